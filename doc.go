// Package csrkit is a small toolkit for sparse matrices in Compressed Sparse
// Row form: canonical storage, sparse addition, and two parallel sparse
// matrix-matrix multiplication kernels.
//
// Layout:
//
//	csr/         Matrix type, validators, Add/AddInPlace, MultiplySaad,
//	             MultiplyRMerge, Transpose, Scale, Prune, MulVec, AllClose
//	mmio/        Matrix Market reader and writer
//	cmd/csrkit/  command-line front end (info, add, mul, verify)
//
// Quick example:
//
//	A, _ := csr.FromDense([][]float64{{1, 2}, {0, 3}})
//	B, _ := csr.NewIdentity(2)
//	C, _ := csr.MultiplyRMerge(A, B, csr.WithWorkers(4))
//	fmt.Println(C.ToDense()) // [[1 2] [0 3]]
//
// All kernels are deterministic: results do not depend on the worker count.
package csrkit
