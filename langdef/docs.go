/*
Package langdef converts textual grammar description to grammar.Grammar structure.

Grammar is described using PEG-like language. Self-definition of this language is:
*/
//  description ::= rule*
//  rule        ::= name, "::=", choice
//  choice      ::= seq, ("/", seq)*
//  seq         ::= item, (",", item)*
//  item        ::= "!"?, atom, ("?" / "*" / "+" / bounds)?
//  atom        ::= string / class / name / "(", choice, ")"
//
//  string ::= '"', ([^"\\\n] / "\\", [^\n])*, '"' / "'", ([^'\\\n] / "\\", [^\n])*, "'"
//  class  ::= "[", "^"?, ("[:", [A-Za-z_]+, ":]" / "\\", [^\n] / [^\]\\\n])+, "]"
//  name   ::= [A-Za-z_], [A-Za-z_0-9]*
//  bounds ::= "{", [0-9]+, (",", [0-9]*)?, "}"
/*
Description must be a valid UTF-8 text. Whitespace and line breaks between tokens are insignificant.
Description may contain line comments starting with # and ending with line feed.

Each rule has a form:
   Name ::= expression

A rule ends where the next rule starts, no terminator is needed. The first rule is the start one.
Names are case-sensitive, each name must be defined exactly once.

Expressions:
   "text" or 'text'  literal, matches exact text;
   [a-z]             character class, matches one codepoint;
   [^a-z]            negated character class, matches one codepoint not in the class;
   Name              rule reference;
   a, b              sequence, matches a then b;
   a / b             ordered choice, the first matching alternative wins;
   (a)               grouping;
   a?  a*  a+        optional item, zero or more items, one or more items;
   a{n} a{m,} a{m,n} bounded repetition;
   !a                not-predicate, matches empty text if a does not match here.

Sequence binds tighter than choice: a, b / c is equal to (a, b) / c.
Not-predicate applies to the quantified item: !a+ is equal to !(a+).
Repetition is greedy and never gives back matched items.

String literals and character classes support escape sequences:
   \\ \" \' \n \r \t  backslash, quotes, line feed, carriage return, tab;
   \xHH \uHHHH \UHHHHHHHH  codepoint with given hex code.
Character classes additionally support \] \[ \- \^ escapes.
A hyphen at the start or the end of a class stands for itself.

Character class may contain predefined classes (see charclass.Names):
   [[:word:][:digit:]]  matches a letter or a digit;
   [^[:whitespace:]]    matches anything except whitespace.

Quantifier applied to a single character class is folded into the class (see grammar.Class),
so [0-9]{4} is as cheap to match as a single codepoint test.

Grammar is validated after parsing. A grammar is rejected if it
references undefined rules or if some rule can invoke itself without consuming input (left recursion).
*/
package langdef
