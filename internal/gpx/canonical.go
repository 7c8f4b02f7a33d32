package gpx

import (
	"bytes"
	"errors"
	"html"
)

const readBufferSize = 4 << 10

var (
	commentStart = []byte("<!--")
	commentEnd   = []byte("-->")
	cdataStart   = []byte("<![CDATA[")
	cdataEnd     = []byte("]]>")
	procStart    = []byte("<?")
	procEnd      = []byte("?>")
	declStart    = []byte("<!")
)

// canonicalize rewrites data into the plain form the tokenizer reads exactly.
// Comments, processing instructions and doctypes are dropped and CDATA
// sections become escaped character data. Inside tags whitespace collapses to
// single spaces, attribute values are double quoted, and '/', '<', '>' and '"'
// within values are written as character references.
func canonicalize(data []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(data))

	for i := 0; i < len(data); {
		if data[i] != '<' {
			j := bytes.IndexByte(data[i:], '<')
			if j < 0 {
				j = len(data) - i
			}
			writeText(&out, data[i:i+j])
			i += j
			continue
		}

		rest := data[i:]
		switch {
		case bytes.HasPrefix(rest, commentStart):
			n, err := skipPast(rest, len(commentStart), commentEnd, "comment")
			if err != nil {
				return nil, err
			}
			i += n

		case bytes.HasPrefix(rest, cdataStart):
			end := bytes.Index(rest[len(cdataStart):], cdataEnd)
			if end < 0 {
				return nil, errors.New("unterminated CDATA section")
			}
			out.WriteString(html.EscapeString(string(rest[len(cdataStart) : len(cdataStart)+end])))
			i += len(cdataStart) + end + len(cdataEnd)

		case bytes.HasPrefix(rest, procStart):
			n, err := skipPast(rest, len(procStart), procEnd, "processing instruction")
			if err != nil {
				return nil, err
			}
			i += n

		case bytes.HasPrefix(rest, declStart):
			n, err := skipDeclaration(rest)
			if err != nil {
				return nil, err
			}
			i += n

		default:
			n, err := writeTag(&out, rest)
			if err != nil {
				return nil, err
			}
			i += n
		}
	}
	return out.Bytes(), nil
}

// writeText copies character data, escaping any literal '>'.
func writeText(out *bytes.Buffer, text []byte) {
	for {
		k := bytes.IndexByte(text, '>')
		if k < 0 {
			out.Write(text)
			return
		}
		out.Write(text[:k])
		out.WriteString("&gt;")
		text = text[k+1:]
	}
}

func skipPast(b []byte, from int, end []byte, what string) (int, error) {
	j := bytes.Index(b[from:], end)
	if j < 0 {
		return 0, errors.New("unterminated " + what)
	}
	return from + j + len(end), nil
}

// skipDeclaration returns the length of a <!DOCTYPE ...> style declaration,
// including any bracketed internal subset.
func skipDeclaration(b []byte) (int, error) {
	depth := 0
	var quote byte
	for i, c := range b {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '<':
			depth++
		case c == '>':
			if depth--; depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, errors.New("unterminated declaration")
}

// writeTag copies the tag at the start of b to out and returns its length.
func writeTag(out *bytes.Buffer, b []byte) (int, error) {
	out.WriteByte('<')
	space := false
	for i := 1; i < len(b); i++ {
		c := b[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			space = true
			continue

		case '=':
			out.WriteByte('=')
			space = false
			continue

		case '"', '\'':
			end := bytes.IndexByte(b[i+1:], c)
			if end < 0 {
				return 0, errors.New("unterminated attribute value")
			}
			out.WriteByte('"')
			writeAttrValue(out, b[i+1:i+1+end])
			out.WriteByte('"')
			i += end + 1
			space = false
			continue
		}

		last := out.Bytes()[out.Len()-1]
		if space && last != '=' && last != '<' {
			out.WriteByte(' ')
		}
		space = false
		out.WriteByte(c)
		if c == '>' {
			return i + 1, nil
		}
		if c == '<' {
			return 0, errors.New("unexpected '<' inside tag")
		}
	}
	return 0, errors.New("unterminated tag")
}

func writeAttrValue(out *bytes.Buffer, v []byte) {
	for _, c := range v {
		switch c {
		case '/':
			out.WriteString("&#47;")
		case '<':
			out.WriteString("&lt;")
		case '>':
			out.WriteString("&gt;")
		case '"':
			out.WriteString("&#34;")
		default:
			out.WriteByte(c)
		}
	}
}
