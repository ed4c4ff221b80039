package widget

import (
	"html/template"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/plotwire/plotwire/pkg/errors"
)

// htmlPage is the standalone document shell. The figure JSON is embedded
// verbatim; the element is sized by the widget's sizing policy unless the
// figure fixes its own dimensions.
var htmlPage = template.Must(template.New("widget").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
{{- range .Stylesheets }}
<link rel="stylesheet" href="{{ . }}"/>
{{- end }}
{{- range .Scripts }}
<script src="{{ . }}"></script>
{{- end }}
<style>
#{{ .ElementID }} { width: {{ .CSSWidth }}; height: {{ .CSSHeight }}; }
</style>
</head>
<body>
<div id="{{ .ElementID }}"></div>
<script>
(function() {
  var spec = {{ .Spec }};
  Plotly.newPlot(document.getElementById("{{ .ElementID }}"), spec.data, spec.layout);
})();
</script>
</body>
</html>
`))

// htmlData feeds the page template.
type htmlData struct {
	ElementID   string
	Scripts     []string
	Stylesheets []string
	CSSWidth    string
	CSSHeight   string
	Spec        template.JS
}

// WriteHTML renders the widget once and writes a standalone HTML document.
// Asset URLs are the dependency source paths relative to the document.
func WriteHTML(w io.Writer, wd *Widget) error {
	raw, err := wd.RenderJSON()
	if err != nil {
		return err
	}

	data := htmlData{
		ElementID: wd.ElementID,
		CSSWidth:  cssSize(wd.Width, wd.SizingPolicy.DefaultWidth),
		CSSHeight: cssSize(wd.Height, cssPixels(wd.SizingPolicy.DefaultHeight)),
		Spec:      template.JS(raw),
	}
	for _, dep := range wd.Dependencies {
		data.Scripts = append(data.Scripts, assetURL(dep.Src, dep.Script))
		if dep.Stylesheet != "" {
			data.Stylesheets = append(data.Stylesheets, assetURL(dep.Src, dep.Stylesheet))
		}
	}

	if err := htmlPage.Execute(w, data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render widget html")
	}
	return nil
}

// assetURL joins a dependency source and file. Absolute URLs are joined
// verbatim; path.Join would collapse their double slash.
func assetURL(src, file string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return strings.TrimSuffix(src, "/") + "/" + file
	}
	return path.Join(src, file)
}

func cssSize(v *float64, fallback string) string {
	if v == nil {
		return fallback
	}
	return cssPixels(*v)
}

func cssPixels(v float64) string {
	return template.HTMLEscapeString(trimFloat(v)) + "px"
}

// trimFloat formats a float without trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
