// Package ir provides the gate-level intermediate representation of the
// optimizer: immutable gate values, the linear Circuit form, and the
// dependency-graph DAG form.
//
// # Representations
//
// A Circuit is an ordered gate sequence over a fixed qubit register; it is
// what front-ends produce and back-ends consume. A DAG makes gate
// dependencies explicit: nodes own gates, and an edge (u, v) means u must
// execute before v. Optimization passes operate on the DAG; routing walks
// it layer by layer.
//
// # Conversion
//
// FromCircuit builds a DAG deterministically (nodes receive IDs in circuit
// order); DAG.ToCircuit emits gates in topological order with fresh IDs.
// Round-tripping preserves qubit count, gate count, operand tuples, and
// angles bit-exactly.
//
//	c, _ := ir.NewCircuit(2)
//	_ = c.AddGate(ir.NewH(0))
//	cx, _ := ir.NewCX(0, 1)
//	_ = c.AddGate(cx)
//
//	d := ir.FromCircuit(c)
//	order, _ := d.TopologicalOrder()
//	back, _ := d.ToCircuit()
package ir
