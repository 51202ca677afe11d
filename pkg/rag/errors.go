package rag

import "errors"

// Error kinds of the pipeline. How a failure propagates is a property of its
// kind, not of where it is caught:
//
//   - ErrEmbeddingUnavailable and ErrGenerationUnavailable are fatal to the
//     turn; the caller receives the apology response.
//   - ErrSearchUnavailable degrades the turn to the no-context path.
//   - Cache and chat persistence failures are logged and swallowed; they have
//     no sentinel because they never cross the pipeline boundary.
var (
	ErrEmbeddingUnavailable  = errors.New("embedding provider unavailable")
	ErrSearchUnavailable     = errors.New("vector search unavailable")
	ErrGenerationUnavailable = errors.New("answer generation unavailable")
)
