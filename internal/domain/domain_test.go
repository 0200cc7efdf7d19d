package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	for input, want := range map[string]Source{
		"TEXT":  SourceText,
		"text":  SourceText,
		"Image": SourceImage,
		" URL ": SourceURL,
	} {
		got, err := ParseSource(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseSource("PDF")
	assert.Error(t, err)
	_, err = ParseSource("")
	assert.Error(t, err)
}

func TestSection_AllLines(t *testing.T) {
	sec := Section{
		Lines: []string{"프로젝트 소개"},
		Lists: [][]string{{"백엔드 개발", "운영"}, {"코드 리뷰"}},
	}
	assert.Equal(t, []string{"프로젝트 소개", "백엔드 개발", "운영", "코드 리뷰"}, sec.AllLines())
	assert.False(t, sec.IsEmpty())
	assert.True(t, Section{}.IsEmpty())
}

func TestZones_Closed(t *testing.T) {
	assert.Len(t, Zones, 13)
	seen := map[string]struct{}{}
	for _, z := range Zones {
		_, dup := seen[z]
		assert.False(t, dup, z)
		seen[z] = struct{}{}
	}
}
