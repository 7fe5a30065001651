package model

// HashRequest is the payload accepted by the hash endpoint. It binds from
// either a JSON or a form-encoded body.
type HashRequest struct {
	Algorithm string `json:"Algorithm" form:"Algorithm"`
	Path      string `json:"Path" form:"Path"`
}

// HashResponse is returned when a digest was computed
type HashResponse struct {
	Algorithm string `json:"Algorithm"`
	Hash      string `json:"Hash"`
}

// ErrorResponse is returned for validation and I/O failures
type ErrorResponse struct {
	ErrorMsg string `json:"errorMsg"`
}

// AlgorithmsResponse lists the algorithms the endpoint accepts
type AlgorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
}
