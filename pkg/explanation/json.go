package explanation

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ethanknights/shap/pkg/errors"
)

// document is the on-disk JSON shape of an explanation.
type document struct {
	Values       [][]float64 `json:"values"`
	FeatureNames []string    `json:"feature_names,omitempty"`
}

// ReadJSON decodes an explanation from r.
//
// The input must be a JSON object with a "values" array of equal-length
// rows and an optional "feature_names" array:
//
//	{
//	  "values": [[0.1, -0.2], [0.3, 0.0]],
//	  "feature_names": ["age", "income"]
//	}
//
// When "feature_names" is omitted, synthetic labels are generated. ReadJSON
// returns an error if the JSON is malformed, the rows are ragged, or the
// label count disagrees with the column count. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Explanation, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode explanation")
	}
	return New(doc.Values, doc.FeatureNames)
}

// ImportJSON reads a JSON explanation file at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*Explanation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
