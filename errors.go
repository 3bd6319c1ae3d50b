package shoco

import "errors"

// Sentinel error kinds surfaced by the codec, model, and trainer. Callers
// should compare against these with errors.Is; the concrete errors
// returned usually wrap one of these with positional context via %w.
var (
	// ErrInvalidHeader is returned by the decoder when a code word's
	// header has four or more leading one-bits, or indexes a pack beyond
	// the model's pack list. This guards the historical CVE-2017-11367
	// out-of-bounds read.
	ErrInvalidHeader = errors.New("shoco: invalid header")

	// ErrTruncated is returned by the decoder when fewer bytes remain in
	// the input than the current code word or literal escape requires.
	ErrTruncated = errors.New("shoco: truncated input")

	// ErrInvalidConfiguration is returned by NewModel and the trainer
	// when constructor arguments fail the model's shape invariants.
	ErrInvalidConfiguration = errors.New("shoco: invalid model configuration")

	// ErrHeaderParse is returned by ReadHeader when the textual C-header
	// model form fails regex-level or value-level validation.
	ErrHeaderParse = errors.New("shoco: header parse error")

	// ErrUntrainedModel is returned by Build and Train when the corpus
	// yielded no bigram statistics, leaving nothing to build a Model's
	// tables from.
	ErrUntrainedModel = errors.New("shoco: model is not trained")
)
