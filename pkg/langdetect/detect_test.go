package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/phpfmt/pkg/langdetect"
)

func TestByPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want langdetect.Kind
	}{
		{"src/Controller.php", langdetect.PHP},
		{"views/index.phtml", langdetect.Template},
		{"README.md", langdetect.NotPHP},
		{"bin/console", langdetect.NotPHP},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.ByPath(tt.path))
		})
	}
}

func TestByContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.PHP, langdetect.ByContent([]byte("#!/usr/bin/env php\n<?php\necho 1;\n")))
	assert.Equal(t, langdetect.PHP, langdetect.ByContent([]byte("<?php\n")))
	assert.Equal(t, langdetect.NotPHP, langdetect.ByContent([]byte("#!/bin/sh\necho hi\n")))
	assert.Equal(t, langdetect.NotPHP, langdetect.ByContent(nil))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	script := []byte("#!/usr/bin/env php\n<?php\n")
	assert.Equal(t, langdetect.PHP, langdetect.Detect("bin/console", script))
	assert.Equal(t, langdetect.NotPHP, langdetect.Detect("notes.txt", script), "known extensions are not sniffed")
	assert.Equal(t, langdetect.Template, langdetect.Detect("a.phtml", nil))
}

func TestIsVendor(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendor("vendor"))
	assert.True(t, langdetect.IsVendor("vendor/symfony/console/Application.php"))
	assert.True(t, langdetect.IsVendor("web/node_modules"))
	assert.False(t, langdetect.IsVendor("src/Http"))
	assert.False(t, langdetect.IsVendor("."))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PHP", langdetect.PHP.String())
	assert.Equal(t, "HTML+PHP", langdetect.Template.String())
	assert.Equal(t, "none", langdetect.NotPHP.String())
}
