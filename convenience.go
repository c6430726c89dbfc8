package fit

import (
	"os"

	"github.com/pkg/errors"
)

// DecodeFile opens path and decodes every FIT sub-file chained within it.
// This is the "file-opening convenience wrapper" spec.md's scope note calls
// an external collaborator's job; it exists here because the ingest daemon
// and the fitdump CLI both need one.
func DecodeFile(path string, opts ...Option) ([]*FitDataRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fit: open %s", path)
	}
	defer f.Close()

	recs, err := DecodeStream(f, opts...)
	if err != nil {
		return recs, errors.Wrapf(err, "fit: decode %s", path)
	}
	return recs, nil
}
