// Package responsewriter wraps http.ResponseWriter to record the status code
// and byte count for logging middleware.
package responsewriter

import "net/http"

// Recorder captures the response status code and body size as they are
// written. A handler that never calls WriteHeader reports 200.
type Recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

// Wrap returns a Recorder around w.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the status code before delegating.
func (r *Recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Write counts bytes before delegating.
func (r *Recorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// StatusCode returns the recorded status code.
func (r *Recorder) StatusCode() int { return r.status }

// BytesWritten returns the number of body bytes written.
func (r *Recorder) BytesWritten() int { return r.bytes }
