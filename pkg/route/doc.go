// Package route maps logical circuits onto devices with limited physical
// connectivity.
//
// A Topology models the device's undirected coupling graph with cached
// all-pairs distances and the usual factories (Linear, Ring, Grid,
// HeavyHex). A Router transforms a logical circuit into a physical one by
// inserting SWAP gates so every two-qubit gate lands on coupled qubits.
// SabreRouter is the production implementation; TrivialRouter is the
// identity baseline.
//
//	topo, _ := route.Linear(4)
//	result, err := route.NewSabreRouter().Route(circuit, topo)
//	// result.RoutedCircuit is over the physical register;
//	// result.FinalMapping[i] locates logical qubit i.
package route
