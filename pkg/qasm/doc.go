// Package qasm is the textual front-end of the optimizer: a lexer, parser,
// and printer for the OpenQASM 2 subset covering the closed gate set.
//
// The accepted dialect:
//
//	OPENQASM 2.0;            // optional header
//	include "qelib1.inc";    // ignored
//	qreg q[4];               // one register (qubit spelling also accepted)
//	h q[0];
//	cx q[0], q[1];           // cnot is an alias
//	rz(pi/4) q[2];           // angles: numbers, pi, products and quotients
//	swap q[1], q[2];
//
// Classical constructs (measure, barrier, creg, reset, custom gate
// definitions) are rejected with an error naming the construct. Errors
// carry line and column via [ParseError].
package qasm
