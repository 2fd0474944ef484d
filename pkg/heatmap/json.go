package heatmap

import (
	"encoding/json"

	"gonum.org/v1/gonum/mat"

	"github.com/ethanknights/shap/pkg/errors"
)

// layoutDocument is the serialized form of a Layout. The matrix is stored
// row-major, one slice per sample, so exports stay readable and round-trip
// exactly.
type layoutDocument struct {
	Values         [][]float64 `json:"values"`
	Labels         []string    `json:"labels"`
	Scores         []float64   `json:"scores,omitempty"`
	Scale          ColorScale  `json:"scale"`
	MeanCurve      []float64   `json:"mean_curve,omitempty"`
	ImportanceBars []float64   `json:"importance_bars,omitempty"`
	Palette        string      `json:"palette"`
	RowHeight      float64     `json:"row_height"`
	Aspect         float64     `json:"aspect"`
}

// MarshalJSON implements json.Marshaler.
func (l Layout) MarshalJSON() ([]byte, error) {
	samples, features := l.View.Values.Dims()
	values := make([][]float64, samples)
	for i := range values {
		row := make([]float64, features)
		mat.Row(row, i, l.View.Values)
		values[i] = row
	}
	return json.Marshal(layoutDocument{
		Values:         values,
		Labels:         l.View.Labels,
		Scores:         l.View.Scores,
		Scale:          l.Scale,
		MeanCurve:      l.MeanCurve,
		ImportanceBars: l.ImportanceBars,
		Palette:        l.Palette,
		RowHeight:      l.RowHeight,
		Aspect:         l.Aspect,
	})
}

// UnmarshalJSON implements json.Unmarshaler, enabling round-trip rendering
// from an exported layout.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var doc layoutDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding layout")
	}
	if len(doc.Values) == 0 || len(doc.Values[0]) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout has no values")
	}

	features := len(doc.Values[0])
	if len(doc.Labels) != features {
		return errors.New(errors.ErrCodeShapeMismatch, "label count does not match value columns")
	}
	values := mat.NewDense(len(doc.Values), features, nil)
	for i, row := range doc.Values {
		if len(row) != features {
			return errors.New(errors.ErrCodeShapeMismatch, "ragged value rows")
		}
		values.SetRow(i, row)
	}

	l.View = CollapsedView{Values: values, Labels: doc.Labels, Scores: doc.Scores}
	l.Scale = doc.Scale
	l.MeanCurve = doc.MeanCurve
	l.ImportanceBars = doc.ImportanceBars
	l.Palette = doc.Palette
	l.RowHeight = doc.RowHeight
	l.Aspect = doc.Aspect
	return nil
}
