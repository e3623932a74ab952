package langdef

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/lagrum"
	"github.com/ava12/lagrum/charclass"
	"github.com/ava12/lagrum/grammar"
	"github.com/ava12/lagrum/lexer"
	"github.com/ava12/lagrum/source"
)

// ParseString parses grammar description and returns a grammar on success.
// Returns nil and lagrum.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.FromString(name, content))
}

// ParseBytes parses grammar description and returns a grammar on success.
// Returns nil and lagrum.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses one or more grammar descriptions as a single grammar and returns it on success.
// The first rule of the first source is the start rule.
// Returns nil and lagrum.Error on error.
func Parse(sources ...*source.Source) (*grammar.Grammar, error) {
	c := newParseContext()
	for _, s := range sources {
		c.q.Append(s)
	}

	rules, e := c.parse()
	if e != nil {
		return nil, e
	}

	return Build(rules...)
}

// Build creates a grammar from rules and validates it the same way as Parse does.
// The first rule is the start rule.
func Build(rules ...grammar.Rule) (*grammar.Grammar, error) {
	if len(rules) == 0 {
		return nil, noRulesError()
	}

	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return nil, emptyRuleNameError(i)
		}
		if seen[r.Name] {
			return nil, duplicateRuleNameError(r.Name)
		}
		seen[r.Name] = true
	}

	g := grammar.New(rules)
	e := findUndefinedRules(g, nil)
	e = findLeftRecursions(g, e)
	if e != nil {
		return nil, e
	}

	return g, nil
}

const (
	stringTok = "string"
	classTok  = "class"
	nameTok   = "name"
	defineTok = "::="
	boundsTok = "bounds"
	opTok     = "op"
	wrongTok  = ""
)

const (
	commaTok  = ","
	slashTok  = "/"
	lParenTok = "("
	rParenTok = ")"
	optTok    = "?"
	plusTok   = "+"
	starTok   = "*"
	notTok    = "!"
)

type parseContext struct {
	q          *source.Queue
	rules      []grammar.Rule
	defined    map[string]bool
	savedToken *lexer.Token
}

var descLexer *lexer.Lexer

func init() {
	tokenTypes := []lexer.TokenType{
		{Type: 1, TypeName: stringTok},
		{Type: 2, TypeName: classTok},
		{Type: 3, TypeName: nameTok},
		{Type: 4, TypeName: defineTok},
		{Type: 5, TypeName: boundsTok},
		{Type: 6, TypeName: opTok},
		{Type: lexer.ErrorTokenType, TypeName: wrongTok},
	}

	re := regexp.MustCompile(
		`^(?:\s+|#[^\n]*|` +
			`("(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*')|` +
			`(\[(?:\[:[A-Za-z_]+:\]|\\.|[^\]\\\n])*\])|` +
			`([A-Za-z_][A-Za-z_0-9]*)|` +
			`(::=)|` +
			`(\{[ \t]*\d+[ \t]*(?:,[ \t]*\d*[ \t]*)?\})|` +
			`([,/()?*+!])|` +
			`(["'\[{:].{0,10}|.))`)

	descLexer = lexer.New(re, tokenTypes)
}

func newParseContext() *parseContext {
	return &parseContext{
		q:       source.NewQueue(),
		defined: make(map[string]bool),
	}
}

func isEof(t *lexer.Token) bool {
	tt := t.Type()
	return tt == lexer.EofTokenType || tt == lexer.EoiTokenType
}

func (c *parseContext) put(t *lexer.Token) {
	if c.savedToken != nil {
		panic("cannot put " + t.TypeName() + " token: already put " + c.savedToken.TypeName())
	}

	c.savedToken = t
}

func (c *parseContext) next() (*lexer.Token, error) {
	if c.savedToken != nil {
		t := c.savedToken
		c.savedToken = nil
		return t, nil
	}

	t, e := descLexer.Next(c.q)
	if e != nil {
		var le *lagrum.Error
		if errors.As(e, &le) {
			e = lexicalError(le)
		}
		return nil, e
	}
	return t, nil
}

// fetch returns next token if its type name or text is one of types.
// Otherwise returns an error if strict is true, or puts the token back and returns nil, nil.
func (c *parseContext) fetch(types []string, strict bool) (*lexer.Token, error) {
	t, e := c.next()
	if e != nil {
		return nil, e
	}

	for _, typ := range types {
		if t.TypeName() == typ || (t.TypeName() == opTok && t.Text() == typ) {
			return t, nil
		}
	}

	if strict {
		expected := strings.Join(types, " or ")
		if isEof(t) {
			return nil, eofError(t, expected)
		}
		return nil, unexpectedTokenError(t, expected)
	}

	c.put(t)
	return nil, nil
}

func (c *parseContext) fetchOne(typ string, strict bool) (*lexer.Token, error) {
	return c.fetch([]string{typ}, strict)
}

func (c *parseContext) parse() ([]grammar.Rule, error) {
	for {
		t, e := c.next()
		if e != nil {
			return nil, e
		}

		switch {
		case t.Type() == lexer.EoiTokenType:
			return c.rules, nil
		case t.Type() == lexer.EofTokenType:
			continue
		case t.TypeName() != nameTok:
			return nil, unexpectedTokenError(t, "rule name")
		}

		e = c.parseRuleDef(t)
		if e != nil {
			return nil, e
		}
	}
}

func (c *parseContext) parseRuleDef(name *lexer.Token) error {
	if c.defined[name.Text()] {
		return duplicateRuleError(name)
	}

	c.defined[name.Text()] = true
	_, e := c.fetchOne(defineTok, true)
	if e != nil {
		return e
	}

	expr, e := c.parseChoice()
	if e != nil {
		return e
	}

	c.rules = append(c.rules, grammar.Rule{Name: name.Text(), Expr: expr})
	return nil
}

func (c *parseContext) parseChoice() (grammar.Expr, error) {
	var alts []grammar.Expr
	for {
		item, e := c.parseSeq()
		if e != nil {
			return nil, e
		}

		alts = append(alts, item)
		t, e := c.fetchOne(slashTok, false)
		if e != nil {
			return nil, e
		}
		if t == nil {
			break
		}
	}

	if len(alts) == 1 {
		return alts[0], nil
	}
	return &grammar.Choice{Alts: alts}, nil
}

func (c *parseContext) parseSeq() (grammar.Expr, error) {
	var items []grammar.Expr
	for {
		item, e := c.parseItem()
		if e != nil {
			return nil, e
		}

		items = append(items, item)
		t, e := c.fetchOne(commaTok, false)
		if e != nil {
			return nil, e
		}
		if t == nil {
			break
		}
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return &grammar.Seq{Items: items}, nil
}

func (c *parseContext) parseItem() (grammar.Expr, error) {
	not, e := c.fetchOne(notTok, false)
	if e != nil {
		return nil, e
	}

	item, e := c.parseQuantified()
	if e != nil || not == nil {
		return item, e
	}
	return &grammar.Not{Inner: item}, nil
}

func (c *parseContext) parseQuantified() (grammar.Expr, error) {
	atom, e := c.parseAtom()
	if e != nil {
		return nil, e
	}

	t, e := c.fetch([]string{optTok, plusTok, starTok, boundsTok}, false)
	if e != nil || t == nil {
		return atom, e
	}

	low, high, e := quantifierBounds(t)
	if e != nil {
		return nil, e
	}

	class, isClass := atom.(*grammar.Class)
	if isClass && class.Min == 1 && class.Max == 1 {
		class.Min, class.Max = low, high
		return class, nil
	}

	return &grammar.Repeat{Inner: atom, Min: low, Max: high}, nil
}

func quantifierBounds(t *lexer.Token) (low, high int, e error) {
	switch t.Text() {
	case optTok:
		return 0, 1, nil
	case plusTok:
		return 1, grammar.Unbounded, nil
	case starTok:
		return 0, grammar.Unbounded, nil
	}

	body := strings.ReplaceAll(strings.ReplaceAll(t.Text()[1:len(t.Text())-1], " ", ""), "\t", "")
	lowText, highText, hasComma := strings.Cut(body, ",")
	low, e = strconv.Atoi(lowText)
	if e != nil {
		return 0, 0, quantifierError(t)
	}

	switch {
	case !hasComma:
		high = low
	case highText == "":
		high = grammar.Unbounded
	default:
		high, e = strconv.Atoi(highText)
		if e != nil || high < low {
			return 0, 0, quantifierError(t)
		}
	}

	if high == 0 {
		return 0, 0, quantifierError(t)
	}
	return low, high, nil
}

func (c *parseContext) parseAtom() (grammar.Expr, error) {
	t, e := c.fetch([]string{stringTok, classTok, nameTok, lParenTok}, true)
	if e != nil {
		return nil, e
	}

	switch t.TypeName() {
	case stringTok:
		text, e := unescapeLiteral(t)
		if e != nil {
			return nil, e
		}
		return &grammar.Literal{Text: text}, nil

	case classTok:
		return parseClass(t)

	case nameTok:
		next, e := c.fetchOne(defineTok, false)
		if e != nil {
			return nil, e
		}
		if next != nil {
			return nil, unexpectedTokenError(next, "expression")
		}
		return &grammar.Ref{Name: t.Text(), Index: -1}, nil
	}

	expr, e := c.parseChoice()
	if e != nil {
		return nil, e
	}

	_, e = c.fetchOne(rParenTok, true)
	if e != nil {
		return nil, e
	}
	return expr, nil
}

type escapeCharEntry struct {
	substitute rune
	hexLen     int
}

var escapeCharMap = map[byte]escapeCharEntry{
	'\\': {'\\', 0},
	'"':  {'"', 0},
	'\'': {'\'', 0},
	'n':  {'\n', 0},
	'r':  {'\r', 0},
	't':  {'\t', 0},
	'x':  {0, 2},
	'u':  {0, 4},
	'U':  {0, 8},
}

var classEscapeCharMap = map[byte]escapeCharEntry{
	']': {']', 0},
	'[': {'[', 0},
	'-': {'-', 0},
	'^': {'^', 0},
}

// readEscape decodes escape sequence at the start of content (content[0] must be a backslash).
// Returns decoded rune and sequence length.
func readEscape(t *lexer.Token, content string, inClass bool) (rune, int, error) {
	if len(content) < 2 {
		return 0, 0, escapeError(t, content)
	}

	entry, valid := escapeCharMap[content[1]]
	if !valid && inClass {
		entry, valid = classEscapeCharMap[content[1]]
	}
	if !valid {
		return 0, 0, escapeError(t, content[:2])
	}

	if entry.hexLen == 0 {
		return entry.substitute, 2, nil
	}

	if len(content) < entry.hexLen+2 {
		return 0, 0, escapeError(t, content)
	}

	seq := content[:entry.hexLen+2]
	codePoint, e := strconv.ParseUint(seq[2:], 16, 32)
	if e != nil || !utf8.ValidRune(rune(codePoint)) {
		return 0, 0, escapeError(t, seq)
	}

	return rune(codePoint), len(seq), nil
}

func unescapeLiteral(t *lexer.Token) (string, error) {
	content := t.Text()
	content = content[1 : len(content)-1]
	if strings.IndexByte(content, '\\') < 0 {
		return content, nil
	}

	var sb strings.Builder
	for {
		slashPos := strings.IndexByte(content, '\\')
		if slashPos < 0 {
			sb.WriteString(content)
			return sb.String(), nil
		}

		sb.WriteString(content[:slashPos])
		content = content[slashPos:]
		r, size, e := readEscape(t, content, false)
		if e != nil {
			return "", e
		}

		sb.WriteRune(r)
		content = content[size:]
	}
}

type classItem struct {
	r       rune
	escaped bool
	named   string
}

func splitClass(t *lexer.Token, content string) ([]classItem, error) {
	var items []classItem
	for content != "" {
		if strings.HasPrefix(content, "[:") {
			end := strings.Index(content, ":]")
			if end > 2 {
				items = append(items, classItem{named: content[2:end]})
				content = content[end+2:]
				continue
			}
		}

		if content[0] == '\\' {
			r, size, e := readEscape(t, content, true)
			if e != nil {
				return nil, e
			}

			items = append(items, classItem{r: r, escaped: true})
			content = content[size:]
			continue
		}

		r, size := utf8.DecodeRuneInString(content)
		items = append(items, classItem{r: r})
		content = content[size:]
	}
	return items, nil
}

func isHyphen(item classItem) bool {
	return item.named == "" && !item.escaped && item.r == '-'
}

func parseClass(t *lexer.Token) (*grammar.Class, error) {
	content := t.Text()
	content = content[1 : len(content)-1]
	result := &grammar.Class{Set: charclass.New(), Min: 1, Max: 1}
	if strings.HasPrefix(content, "^") {
		result.Negated = true
		content = content[1:]
	}

	items, e := splitClass(t, content)
	if e != nil {
		return nil, e
	}
	if len(items) == 0 {
		return nil, emptyClassError(t)
	}

	for i := 0; i < len(items); i++ {
		item := items[i]
		if item.named != "" {
			set, has := charclass.Named(item.named)
			if !has {
				return nil, unknownClassError(t, item.named)
			}

			result.Set.Union(set)
			result.Names = append(result.Names, item.named)
			continue
		}

		if i+2 < len(items) && isHyphen(items[i+1]) && items[i+2].named == "" && !isHyphen(item) {
			high := items[i+2].r
			if high < item.r {
				return nil, rangeError(t, item.r, high)
			}

			result.Set.AddRange(item.r, high)
			i += 2
			continue
		}

		result.Set.Add(item.r)
	}

	return result, nil
}
