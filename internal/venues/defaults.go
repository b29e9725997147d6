// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package venues

import "github.com/pdiddy/venue-harvester/pkg/types"

// Defaults is the built-in venue list. Theory and cryptography conferences
// are harvested through DBLP with keyword filtering; journals use explicit
// OpenAlex source identifiers.
func Defaults() []types.VenueDescriptor {
	return []types.VenueDescriptor{
		{Code: "FOCS", DisplayName: "IEEE Symposium on Foundations of Computer Science (FOCS)", SecondaryIndexKey: "FOCS", RequireKeywordMatch: true},
		{Code: "STOC", DisplayName: "ACM Symposium on Theory of Computing (STOC)", SecondaryIndexKey: "STOC", RequireKeywordMatch: true},
		{Code: "SODA", DisplayName: "ACM-SIAM Symposium on Discrete Algorithms (SODA)", SecondaryIndexKey: "SODA", RequireKeywordMatch: true},
		{Code: "CCC", DisplayName: "IEEE Conference on Computational Complexity (CCC)", SecondaryIndexKey: "CCC", RequireKeywordMatch: true},
		{Code: "ITCS", DisplayName: "Innovations in Theoretical Computer Science (ITCS)", SecondaryIndexKey: "ITCS", RequireKeywordMatch: true},
		{Code: "CRYPTO", DisplayName: "International Cryptology Conference (CRYPTO)", SecondaryIndexKey: "CRYPTO", RequireKeywordMatch: true},
		{Code: "EUROCRYPT", DisplayName: "European Cryptology Conference (EUROCRYPT)", SecondaryIndexKey: "EUROCRYPT", RequireKeywordMatch: true},
		{Code: "QCRYPT", DisplayName: "Conference on Quantum Cryptography (QCrypt)", SecondaryIndexKey: "QCRYPT"},
		{Code: "TQC", DisplayName: "Theory of Quantum Computation, Communication and Cryptography (TQC)", SecondaryIndexKey: "TQC"},

		{Code: "NPJQI", DisplayName: "npj Quantum Information", SourceIDs: []string{"https://openalex.org/S2738600312"}},
		{Code: "PRXQ", DisplayName: "PRX Quantum", SourceIDs: []string{"https://openalex.org/S4210195673"}},
		{Code: "QUANTUM", DisplayName: "Quantum (open journal)", SourceIDs: []string{"https://openalex.org/S4210226432"}},
		{Code: "QIC", DisplayName: "Quantum Information and Computation", SourceIDs: []string{"https://openalex.org/S41034432"}},
		{Code: "ACMTQC", DisplayName: "ACM Transactions on Quantum Computing", SourceIDs: []string{"https://openalex.org/S4210170170"}},
		{Code: "NATCOMM", DisplayName: "Nature Communications", SourceIDs: []string{"https://openalex.org/S64187185"}, RequireKeywordMatch: true},
		{Code: "NATPHYS", DisplayName: "Nature Physics", SourceIDs: []string{"https://openalex.org/S156274416"}, RequireKeywordMatch: true},
		{Code: "NATURE", DisplayName: "Nature", SourceIDs: []string{"https://openalex.org/S137773608"}, RequireKeywordMatch: true},
		{Code: "SCIENCE", DisplayName: "Science", SourceIDs: []string{"https://openalex.org/S3880285"}, RequireKeywordMatch: true},
		{Code: "PRL", DisplayName: "Physical Review Letters", SourceIDs: []string{"https://openalex.org/S24807848"}, RequireKeywordMatch: true},
		{Code: "PRA", DisplayName: "Physical Review A", SourceIDs: []string{"https://openalex.org/S164566984"}, RequireKeywordMatch: true},
		{Code: "PRX", DisplayName: "Physical Review X", SourceIDs: []string{"https://openalex.org/S137042341"}, RequireKeywordMatch: true},
		{Code: "ISIT", DisplayName: "IEEE Transactions on Information Theory", SourceIDs: []string{"https://openalex.org/S4502562"}, RequireKeywordMatch: true},
	}
}
