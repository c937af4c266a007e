package attr

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// FontFamily is the `font-family` list grammar: comma-separated quoted
// strings or unquoted identifier runs (§4.4, teacher types.go FontFamily).
type FontFamily struct {
	Values []string
}

func (ff *FontFamily) Parse(raw string) error {
	toks, err := tokenize(raw)
	if err != nil {
		return err
	}

	var values []string
	for len(toks) > 0 {
		switch toks[0].Type {
		case css.StringToken:
			values, toks = append(values, strings.Trim(toks[0].Value, `"'`)), toks[1:]
		case css.IdentToken:
			var f strings.Builder
			for len(toks) > 0 && toks[0].Type != css.CommaToken {
				f.WriteString(toks[0].Value)
				if len(toks) > 1 && toks[1].Type != css.CommaToken {
					f.WriteByte(' ')
				}
				toks = toks[1:]
			}
			values = append(values, f.String())
		default:
			toks = toks[1:]
			continue
		}
		if len(toks) == 0 {
			break
		}
		if toks[0].Type == css.CommaToken {
			toks = toks[1:]
		}
	}
	ff.Values = values
	return nil
}

func (ff *FontFamily) WriteAtom(sb *strings.Builder) {
	for i, v := range ff.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		if strings.ContainsAny(v, " \t") {
			sb.WriteByte('"')
			sb.WriteString(v)
			sb.WriteByte('"')
		} else {
			sb.WriteString(v)
		}
	}
}
