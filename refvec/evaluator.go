package refvec

// Evaluator is the opaque candidate function capability: a byte-to-byte
// mapping whose identity the engine fingerprints. Implementations own no
// state observable to the engine and may fail; failures surface as
// EvalError with the offending stream index attached.
//
// Output length is function-determined and may vary per input. The engine
// only requires it to be non-empty.
type Evaluator interface {
	// Evaluate applies the candidate function to a stream item.
	Evaluate(input []byte) ([]byte, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func([]byte) ([]byte, error)

// Evaluate implements Evaluator.
func (f EvaluatorFunc) Evaluate(input []byte) ([]byte, error) {
	return f(input)
}
