package shoco

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"
)

// The header codec parses and emits a textual C-header model format: the
// MIN_CHR/MAX_CHR defines, the four lookup tables as C array initialisers,
// and one row per pack scheme. WriteHeader and ReadHeader are its two
// directions; they are plain functions, with no codec type to construct.
//
// Pack rows are written and read as { header byte, bytes_packed,
// bytes_unpacked, { offsets }, { masks } }. ReadHeader rejects pack rows
// that carry the header as a 32-bit word or have further fields after the
// masks.

const headerTemplate = `#define MIN_CHR {{.MinChar}}
#define MAX_CHR {{.MaxChar}}
static const char chrs_by_chr_id[{{.C}}] = { {{.CharsByID}} };
static const int8_t chr_ids_by_chr[256] = { {{.IDsByChar}} };
static const int8_t successor_ids_by_chr_id_and_chr_id[{{.C}}][{{.C}}] = { {{.SuccessorIDs}} };
static const int8_t chrs_by_chr_and_successor_id[{{.MaxChar}}-{{.MinChar}}][{{.S}}] = { {{.ChrsBySucc}} };
#define PACK_COUNT {{.PackCount}}
#define MAX_SUCCESSOR_N {{.MaxSuccessorN}}
static const Pack packs[PACK_COUNT] = {
{{.Packs}}};
`

var headerTmpl = template.Must(template.New("header").Parse(headerTemplate))

// cEscapeByte renders b as a single-quoted C character literal, escaping
// non-printable and non-ASCII bytes with \xHH.
func cEscapeByte(b byte) string {
	switch b {
	case '\a':
		return `'\a'`
	case '\b':
		return `'\b'`
	case '\f':
		return `'\f'`
	case '\n':
		return `'\n'`
	case '\r':
		return `'\r'`
	case '\t':
		return `'\t'`
	case '\v':
		return `'\v'`
	case '\\':
		return `'\\'`
	case '\'':
		return `'\''`
	}
	if b >= 0x20 && b < 0x7f {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf(`'\x%02x'`, b)
}

// idxString renders a table index as a signed decimal, using -1 for
// InvalidIndex.
func idxString(i Index) string {
	if i == InvalidIndex {
		return "-1"
	}
	return strconv.Itoa(int(i))
}

type headerData struct {
	MinChar, MaxChar          int
	C, S, PackCount           int
	MaxSuccessorN             int
	CharsByID, IDsByChar      string
	SuccessorIDs, ChrsBySucc  string
	Packs                     string
}

// WriteHeader renders m in the textual C-header model format described
// by headerTemplate above.
func WriteHeader(m *Model) (string, error) {
	c := m.leaderCount
	s := m.successorCount

	charStrs := make([]string, c)
	for i, ch := range m.charsByID {
		charStrs[i] = cEscapeByte(ch)
	}

	idStrs := make([]string, 256)
	for i, id := range m.idsByChar {
		idStrs[i] = idxString(id)
	}

	rows := make([]string, c)
	for r := 0; r < c; r++ {
		cols := make([]string, c)
		for col := 0; col < c; col++ {
			cols[col] = idxString(m.successorIDs[r*c+col])
		}
		rows[r] = "{ " + strings.Join(cols, ", ") + " }"
	}

	succRows := make([]string, m.maxChar-m.minChar)
	for r := range succRows {
		cols := make([]string, s)
		for col := 0; col < s; col++ {
			cols[col] = cEscapeByte(m.chrsBySucc[r*s+col])
		}
		succRows[r] = "{ " + strings.Join(cols, ", ") + " }"
	}

	packLines := make([]string, len(m.packs))
	for i, p := range m.packs {
		offs := make([]string, p.BytesUnpacked)
		masks := make([]string, p.BytesUnpacked)
		for j := 0; j < p.BytesUnpacked; j++ {
			offs[j] = strconv.Itoa(int(p.Offsets[j]))
			masks[j] = fmt.Sprintf("0x%x", p.Masks[j])
		}
		packLines[i] = fmt.Sprintf("  { 0x%02x, %d, %d, { %s }, { %s } },\n",
			p.Header, p.BytesPacked, p.BytesUnpacked, strings.Join(offs, ", "), strings.Join(masks, ", "))
	}

	data := headerData{
		MinChar: m.minChar, MaxChar: m.maxChar,
		C: c, S: s, PackCount: len(m.packs),
		MaxSuccessorN: m.maxSuccessorLen,
		CharsByID:     strings.Join(charStrs, ", "),
		IDsByChar:     strings.Join(idStrs, ", "),
		SuccessorIDs:  strings.Join(rows, ", "),
		ChrsBySucc:    strings.Join(succRows, ", "),
		Packs:         strings.Join(packLines, ""),
	}

	var buf bytes.Buffer
	if err := headerTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: rendering header template: %v", ErrHeaderParse, err)
	}
	return buf.String(), nil
}

var (
	reMinChr  = regexp.MustCompile(`#define\s+MIN_CHR\s+(-?\d+)`)
	reMaxChr  = regexp.MustCompile(`#define\s+MAX_CHR\s+(-?\d+)`)
	reCharLit = regexp.MustCompile(`'(\\x[0-9a-fA-F]{1,2}|\\[0-7]{1,3}|\\.|[^'\\])'`)
	reIntList = regexp.MustCompile(`-?\d+`)
	rePackRow = regexp.MustCompile(`\{\s*0x([0-9a-fA-F]+),\s*(\d+),\s*(\d+),\s*\{([^}]*)\},\s*\{([^}]*)\}\s*\}`)
	reBraced  = regexp.MustCompile(`\{([^{}]*)\}`)
	reMask    = regexp.MustCompile(`0x[0-9a-fA-F]+`)
)

// unescapeCChar decodes the body of a single-quoted C character literal
// (without the surrounding quotes): \a \b \f \n \r \t \v \\ \' \" \? ,
// \xHH, and \nnn octal.
func unescapeCChar(body string) (byte, error) {
	if len(body) == 1 {
		return body[0], nil
	}
	if len(body) < 2 || body[0] != '\\' {
		return 0, fmt.Errorf("%w: malformed character literal %q", ErrHeaderParse, body)
	}
	switch body[1] {
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case '?':
		return '?', nil
	case 'e':
		return 0x1b, nil
	case 'x':
		v, err := strconv.ParseUint(body[2:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: bad \\x escape %q: %v", ErrHeaderParse, body, err)
		}
		return byte(v), nil
	default:
		v, err := strconv.ParseUint(body[1:], 8, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: bad octal escape %q: %v", ErrHeaderParse, body, err)
		}
		return byte(v), nil
	}
}

// parseCharList parses a brace-delimited list of C character literals
// into bytes.
func parseCharList(s string) ([]byte, error) {
	matches := reCharLit.FindAllStringSubmatch(s, -1)
	out := make([]byte, 0, len(matches))
	for _, m := range matches {
		b, err := unescapeCChar(m[1])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// parseIntList parses a comma-separated list of signed decimal integers
// (including -1 for InvalidIndex) into Index values.
func parseIntList(s string) ([]Index, error) {
	matches := reIntList.FindAllString(s, -1)
	out := make([]Index, 0, len(matches))
	for _, tok := range matches {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: bad integer %q: %v", ErrHeaderParse, tok, err)
		}
		if v == -1 {
			out = append(out, InvalidIndex)
			continue
		}
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: index %d out of range", ErrHeaderParse, v)
		}
		out = append(out, Index(v))
	}
	return out, nil
}

// ReadHeader parses the textual C-header model format emitted by
// WriteHeader back into a Model, validating every invariant NewModel
// checks.
func ReadHeader(text string) (*Model, error) {
	minM := reMinChr.FindStringSubmatch(text)
	maxM := reMaxChr.FindStringSubmatch(text)
	if minM == nil || maxM == nil {
		return nil, fmt.Errorf("%w: missing MIN_CHR/MAX_CHR defines", ErrHeaderParse)
	}
	minChar, err := strconv.Atoi(minM[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad MIN_CHR: %v", ErrHeaderParse, err)
	}
	maxChar, err := strconv.Atoi(maxM[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad MAX_CHR: %v", ErrHeaderParse, err)
	}

	lines := splitHeaderLines(text)

	charsByIDLine, ok := findLineContaining(lines, "chrs_by_chr_id[")
	if !ok {
		return nil, fmt.Errorf("%w: missing chrs_by_chr_id table", ErrHeaderParse)
	}
	charsByID, err := parseCharList(bracedBody(charsByIDLine))
	if err != nil {
		return nil, err
	}

	successorIDsLine, ok := findLineContaining(lines, "successor_ids_by_chr_id_and_chr_id[")
	if !ok {
		return nil, fmt.Errorf("%w: missing successor_ids table", ErrHeaderParse)
	}
	c := len(charsByID)
	rowMatches := reBraced.FindAllString(bracedBody(successorIDsLine), -1)
	if len(rowMatches) != c {
		return nil, fmt.Errorf("%w: successor_ids has %d rows, want %d", ErrHeaderParse, len(rowMatches), c)
	}
	successorIDs := make([][]Index, c)
	for i, row := range rowMatches {
		idx, err := parseIntList(bracedBody(row))
		if err != nil {
			return nil, err
		}
		successorIDs[i] = idx
	}

	chrsBySuccLine, ok := findLineContaining(lines, "chrs_by_chr_and_successor_id[")
	if !ok {
		return nil, fmt.Errorf("%w: missing chrs_by_chr_and_successor_id table", ErrHeaderParse)
	}
	succRowMatches := reBraced.FindAllString(bracedBody(chrsBySuccLine), -1)
	chrsBySucc := make([][]byte, len(succRowMatches))
	for i, row := range succRowMatches {
		b, err := parseCharList(bracedBody(row))
		if err != nil {
			return nil, err
		}
		chrsBySucc[i] = b
	}

	var packs []PackScheme
	for _, m := range rePackRow.FindAllStringSubmatch(text, -1) {
		header, err := strconv.ParseUint(m[1], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pack header: %v", ErrHeaderParse, err)
		}
		bytesPacked, _ := strconv.Atoi(m[2])
		bytesUnpacked, _ := strconv.Atoi(m[3])
		offTokens := reIntList.FindAllString(m[4], -1)
		maskTokens := reMask.FindAllString(m[5], -1)
		if len(offTokens) != bytesUnpacked || len(maskTokens) != bytesUnpacked {
			return nil, fmt.Errorf("%w: pack field count mismatch", ErrHeaderParse)
		}
		p := PackScheme{Header: byte(header), BytesPacked: bytesPacked, BytesUnpacked: bytesUnpacked}
		for i := 0; i < bytesUnpacked; i++ {
			off, _ := strconv.Atoi(offTokens[i])
			mask, err := strconv.ParseUint(strings.TrimPrefix(maskTokens[i], "0x"), 16, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: bad mask: %v", ErrHeaderParse, err)
			}
			p.Offsets[i] = uint(off)
			p.Masks[i] = uint32(mask)
		}
		packs = append(packs, p)
	}
	if len(packs) == 0 {
		return nil, fmt.Errorf("%w: no pack rows found", ErrHeaderParse)
	}

	return NewModel(minChar, maxChar, charsByID, successorIDs, chrsBySucc, packs)
}

func splitHeaderLines(text string) []string {
	return strings.Split(text, "\n")
}

func findLineContaining(lines []string, needle string) (string, bool) {
	for _, l := range lines {
		if strings.Contains(l, needle) {
			return l, true
		}
	}
	return "", false
}

// bracedBody returns the contents between the outermost '{' ... '};' of a
// declaration line, e.g. "static const char x[3] = { 'a', 'b' };" ->
// "'a', 'b'".
func bracedBody(line string) string {
	start := strings.Index(line, "{")
	end := strings.LastIndex(line, "}")
	if start < 0 || end < 0 || end <= start {
		return ""
	}
	return line[start+1 : end]
}
