package qasm

import (
	"math"
	"strings"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
)

// parser builds a Circuit from the token stream. The accepted dialect is
// the OpenQASM 2 subset the optimizer understands: an optional OPENQASM
// header, include directives (ignored), one quantum register declaration,
// and gate applications from the closed gate set. Classical constructs
// (measure, barrier, creg, if) are rejected by name.
type parser struct {
	lex *lexer
	tok token

	regName string
	circuit *ir.Circuit
}

// Parse builds a circuit from OpenQASM source.
func Parse(src string) (*ir.Circuit, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.kind != tokEOF {
		if err := p.statement(); err != nil {
			return nil, err
		}
	}
	if p.circuit == nil {
		return nil, errorf(p.tok.line, p.tok.col, "missing qubit register declaration")
	}
	return p.circuit, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.tok.kind != kind {
		return token{}, errorf(p.tok.line, p.tok.col, "expected %s, got %q", kind, p.tok.text)
	}
	tok := p.tok
	return tok, p.advance()
}

var unsupported = map[string]bool{
	"measure": true,
	"barrier": true,
	"creg":    true,
	"bit":     true,
	"reset":   true,
	"if":      true,
	"gate":    true,
}

func (p *parser) statement() error {
	if p.tok.kind != tokIdent {
		return errorf(p.tok.line, p.tok.col, "expected statement, got %q", p.tok.text)
	}

	name := p.tok.text
	switch {
	case strings.EqualFold(name, "OPENQASM"):
		return p.header()
	case name == "include":
		return p.include()
	case name == "qreg" || name == "qubit":
		return p.register()
	case unsupported[strings.ToLower(name)]:
		return errorf(p.tok.line, p.tok.col, "unsupported construct %q", name)
	default:
		return p.gate()
	}
}

// header consumes "OPENQASM <version>;".
func (p *parser) header() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(tokNumber); err != nil {
		return err
	}
	_, err := p.expect(tokSemicolon)
	return err
}

// include consumes and ignores `include "...";`.
func (p *parser) include() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(tokString); err != nil {
		return err
	}
	_, err := p.expect(tokSemicolon)
	return err
}

// register consumes "qreg name[n];" (or the qubit spelling) and creates
// the circuit.
func (p *parser) register() error {
	declLine, declCol := p.tok.line, p.tok.col
	if p.circuit != nil {
		return errorf(declLine, declCol, "only one qubit register is supported")
	}
	if err := p.advance(); err != nil {
		return err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return err
	}
	if _, err := p.expect(tokLBracket); err != nil {
		return err
	}
	size, err := p.expect(tokNumber)
	if err != nil {
		return err
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return err
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return err
	}

	n := int(size.num)
	if float64(n) != size.num || n < 1 {
		return errorf(size.line, size.col, "register size must be a positive integer, got %q", size.text)
	}
	circuit, cerr := ir.NewCircuit(n)
	if cerr != nil {
		return errorf(size.line, size.col, "%v", cerr)
	}
	p.regName = name.text
	p.circuit = circuit
	return nil
}

// gate consumes one gate application: name [ (expr) ] operand {, operand} ;
func (p *parser) gate() error {
	nameTok := p.tok
	kind, ok := ir.ParseKind(nameTok.text)
	if !ok {
		return errorf(nameTok.line, nameTok.col, "unknown gate %q", nameTok.text)
	}
	if p.circuit == nil {
		return errorf(nameTok.line, nameTok.col, "gate before qubit register declaration")
	}
	if err := p.advance(); err != nil {
		return err
	}

	var angle float64
	if p.tok.kind == tokLParen {
		if !kind.Parameterized() {
			return errorf(p.tok.line, p.tok.col, "%s does not take a parameter", kind)
		}
		if err := p.advance(); err != nil {
			return err
		}
		a, err := p.angleExpr()
		if err != nil {
			return err
		}
		angle = a
		if _, err := p.expect(tokRParen); err != nil {
			return err
		}
	} else if kind.Parameterized() {
		return errorf(p.tok.line, p.tok.col, "%s requires an angle parameter", kind)
	}

	qubits := []int{}
	for {
		q, err := p.operand()
		if err != nil {
			return err
		}
		qubits = append(qubits, q)
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	if _, err := p.expect(tokSemicolon); err != nil {
		return err
	}

	g, err := ir.NewGate(kind, qubits, angle)
	if err != nil {
		return errorf(nameTok.line, nameTok.col, "%v", err)
	}
	if err := p.circuit.AddGate(g); err != nil {
		return errorf(nameTok.line, nameTok.col, "%v", err)
	}
	return nil
}

// operand consumes "name[index]".
func (p *parser) operand() (int, error) {
	name, err := p.expect(tokIdent)
	if err != nil {
		return 0, err
	}
	if name.text != p.regName {
		return 0, errorf(name.line, name.col, "unknown register %q", name.text)
	}
	if _, err := p.expect(tokLBracket); err != nil {
		return 0, err
	}
	idx, err := p.expect(tokNumber)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return 0, err
	}
	q := int(idx.num)
	if float64(q) != idx.num || q < 0 {
		return 0, errorf(idx.line, idx.col, "qubit index must be a non-negative integer, got %q", idx.text)
	}
	return q, nil
}

// angleExpr evaluates the angle grammar: an optional sign, then factors
// (number or pi) combined with * and /.
func (p *parser) angleExpr() (float64, error) {
	negative := false
	for p.tok.kind == tokMinus || p.tok.kind == tokPlus {
		if p.tok.kind == tokMinus {
			negative = !negative
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
	}

	value, err := p.angleFactor()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := p.tok.kind
		opLine, opCol := p.tok.line, p.tok.col
		if err := p.advance(); err != nil {
			return 0, err
		}
		rhs, err := p.angleFactor()
		if err != nil {
			return 0, err
		}
		if op == tokStar {
			value *= rhs
		} else {
			if rhs == 0 {
				return 0, errorf(opLine, opCol, "division by zero in angle expression")
			}
			value /= rhs
		}
	}

	if negative {
		value = -value
	}
	return value, nil
}

func (p *parser) angleFactor() (float64, error) {
	switch p.tok.kind {
	case tokNumber:
		v := p.tok.num
		return v, p.advance()
	case tokIdent:
		if strings.EqualFold(p.tok.text, "pi") {
			return math.Pi, p.advance()
		}
		return 0, errorf(p.tok.line, p.tok.col, "unexpected identifier %q in angle expression", p.tok.text)
	default:
		return 0, errorf(p.tok.line, p.tok.col, "expected number or pi, got %q", p.tok.text)
	}
}
