package render

import (
	"bytes"
	"testing"

	errs "github.com/matzehuels/algotrace/pkg/errors"
)

func TestConvertSVGPassthrough(t *testing.T) {
	in := []byte("<svg/>")
	out, err := Convert(in, FormatSVG, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(in, out) {
		t.Errorf("Convert(svg) = %q, want input unchanged", out)
	}
}

func TestConvertUnsupported(t *testing.T) {
	for _, format := range []string{FormatDOT, "gif", ""} {
		if _, err := Convert([]byte("<svg/>"), format, 1); !errs.Is(err, errs.ErrCodeUnsupported) {
			t.Errorf("Convert(%q) err = %v, want UNSUPPORTED", format, err)
		}
	}
}
