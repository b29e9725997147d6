// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

// DefaultKeywords is the curated quantum information science keyword list.
// Entries are lower case and matched as substrings, so short acronyms
// ("mip", "qec") deliberately over-include.
var DefaultKeywords = []string{
	// core identifiers
	"quantum", "qubit", "qudit", "qutrit",

	// algorithms and protocols
	"quantum algorithm", "quantum circuit", "quantum optimization",
	"variational quantum", "vqa", "vqe", "qaoa", "quantum walk",
	"boson sampling", "hamiltonian simulation", "quantum simulation",

	// information theory and cryptography
	"entanglement", "bell inequality", "nonlocality",
	"quantum key distribution", "qkd", "device-independent",
	"measurement-based quantum", "mbqc",

	// complexity theory
	"quantum advantage", "quantum supremacy", "bqp", "qma", "qmma", "qcma",
	"qszk", "boson-sampling", "classical simulation of quantum",

	// error correction and noise
	"quantum error correction", "qec", "surface code", "stabilizer code",
	"fault tolerant", "fault-tolerant",

	// channels
	"quantum channel", "quantum capacity", "quantum information",
	"quantum entropy", "coherent information", "quantum mutual information",

	// cryptography and randomness
	"quantum cryptography", "post-quantum", "quantum randomness",
	"randomness amplification", "quantum de finetti",

	// interactive proofs, entangled provers, nonlocal games
	"mip", "mip*", "nonlocal game", "nonlocal games", "entangled game",
	"entangled games", "entangled prover", "entangled provers", "xor game",
	"xor games", "interactive proof", "interactive proofs", "multiprover",
	"multi-prover", "rigidity", "rigidity theorem", "self-testing",
	"self testing", "quantum pcp", "pcp for entangled",
	"quantum low-degree test", "classical verification of quantum",
	"verifiable quantum",
}
