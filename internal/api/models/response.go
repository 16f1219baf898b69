package models

// BaseResponse represents the base API response structure
type BaseResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp" example:"1700000000"`
	RequestID string      `json:"request_id,omitempty" example:"req_123456"`
}

// ErrorInfo represents error information
type ErrorInfo struct {
	Code    string `json:"code" example:"INVALID_REQUEST"`
	Message string `json:"message" example:"Invalid request parameters"`
	Details string `json:"details,omitempty"`
}

// VoterStatusResponse represents voter status for one principal
type VoterStatusResponse struct {
	Principal    string `json:"principal" example:"0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b"`
	IsRegistered bool   `json:"is_registered" example:"true"`
	RegisteredAt int64  `json:"registered_at,omitempty" example:"1700000000"`
	HasVoterRole bool   `json:"has_voter_role" example:"true"`
}

// RoleMembershipResponse lists the principals holding one role
type RoleMembershipResponse struct {
	Role    string   `json:"role" example:"administrator"`
	Members []string `json:"members"`
}

// CandidateResponse represents candidate information
type CandidateResponse struct {
	ID          uint64 `json:"id" example:"1"`
	Name        string `json:"name" example:"Alice Johnson"`
	Description string `json:"description" example:"Community representative"`
	VoteCount   uint64 `json:"vote_count" example:"42"`
	AddedBy     string `json:"added_by" example:"0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"`
	AddedAt     int64  `json:"added_at" example:"1700000000"`
}

// ElectionResponse represents election information
type ElectionResponse struct {
	ID           uint64   `json:"id" example:"1"`
	Title        string   `json:"title" example:"General Election"`
	Description  string   `json:"description" example:"Annual general election"`
	StartTime    int64    `json:"start_time" example:"1700000600"`
	EndTime      int64    `json:"end_time" example:"1700004200"`
	IsActive     bool     `json:"is_active" example:"true"`
	State        string   `json:"state" example:"open"`
	CandidateIDs []uint64 `json:"candidate_ids"`
	TotalVotes   uint64   `json:"total_votes" example:"125"`
	Creator      string   `json:"creator" example:"0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"`
	CreatedAt    int64    `json:"created_at" example:"1700000000"`
}

// ElectionResultsResponse carries tallies in roster order as parallel arrays
type ElectionResultsResponse struct {
	ElectionID   uint64   `json:"election_id" example:"1"`
	CandidateIDs []uint64 `json:"candidate_ids"`
	VoteCounts   []uint64 `json:"vote_counts"`
	TotalVotes   uint64   `json:"total_votes" example:"125"`
}

// BatchRegisterResponse reports the partial success of a voter batch
type BatchRegisterResponse struct {
	Requested  int `json:"requested" example:"3"`
	Registered int `json:"registered" example:"2"`
	Skipped    int `json:"skipped" example:"1"`
}

// CountsResponse represents the aggregate ledger counters
type CountsResponse struct {
	Candidates int `json:"candidates" example:"5"`
	Elections  int `json:"elections" example:"2"`
	Voters     int `json:"voters" example:"120"`
	Events     int `json:"events" example:"320"`
}

// TokenResponse carries a minted session token
type TokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64  `json:"expires_in" example:"86400"`
}

// HealthCheckResponse represents health check response
type HealthCheckResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp int64                  `json:"timestamp" example:"1700000000"`
	Paused    bool                   `json:"paused" example:"false"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthCheck represents individual health check
type HealthCheck struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty"`
}

// WebSocketMessage represents WebSocket message structure
type WebSocketMessage struct {
	Type      string      `json:"type" example:"vote_cast"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp" example:"1700000000"`
}
