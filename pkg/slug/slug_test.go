// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kryptotracker/pkg/slug"
)

/*
TestFrom covers accent removal and hyphen collapsing.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Kraken API", "kraken-api"},
		{"  Café -- Crème ", "cafe-creme"},
		{"Binance/Spot", "binance-spot"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestFilename keeps case and separators and drops unsafe characters.
*/
func TestFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Steuerbericht_2023.pdf", "Steuerbericht_2023.pdf"},
		{"Steuerbericht_2023-01-01_2023-12-31.pdf", "Steuerbericht_2023-01-01_2023-12-31.pdf"},
		{"Übersicht März.pdf", "Uebersicht_Maerz.pdf"},
		{"../../etc/passwd", "etc_passwd"},
		{"", "download"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Filename(tt.input))
		})
	}
}
