package app

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RenderTemplate runs data through the go template engine with the hermetic
// sprig functions. vars are available as template data.
func RenderTemplate(data []byte, vars map[string]any) ([]byte, error) {
	tpl, err := template.New("rle").Funcs(sprig.HermeticTxtFuncMap()).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse go template: %w", err)
	}

	buf := bytes.NewBuffer(nil)
	if err := tpl.Execute(buf, vars); err != nil {
		return nil, fmt.Errorf("failed to execute go template: %w", err)
	}
	return buf.Bytes(), nil
}
