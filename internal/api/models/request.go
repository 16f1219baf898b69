package models

// GrantRoleRequest grants or revokes a role on a principal
type GrantRoleRequest struct {
	Role      string `json:"role" binding:"required" example:"election_creator"`
	Principal string `json:"principal" binding:"required" example:"0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b"`
}

// RegisterVoterRequest registers one voter
type RegisterVoterRequest struct {
	Principal string `json:"principal" binding:"required" example:"0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b"`
}

// BatchRegisterVotersRequest registers up to the batch limit of voters
type BatchRegisterVotersRequest struct {
	Principals []string `json:"principals" binding:"required"`
}

// AddCandidateRequest creates a candidate
type AddCandidateRequest struct {
	Name        string `json:"name" binding:"required" example:"Alice Johnson"`
	Description string `json:"description" binding:"required" example:"Community representative"`
}

// CreateElectionRequest creates an election with a fixed roster. Times are
// unix seconds.
type CreateElectionRequest struct {
	Title        string   `json:"title" binding:"required" example:"General Election"`
	Description  string   `json:"description" example:"Annual general election"`
	StartTime    int64    `json:"start_time" binding:"required" example:"1700000600"`
	EndTime      int64    `json:"end_time" binding:"required" example:"1700004200"`
	CandidateIDs []uint64 `json:"candidate_ids" binding:"required"`
}

// CastVoteRequest records a ballot for the authenticated principal
type CastVoteRequest struct {
	ElectionID  uint64 `json:"election_id" binding:"required" example:"1"`
	CandidateID uint64 `json:"candidate_id" binding:"required" example:"2"`
}

// TokenRequest mints a session token for a principal
type TokenRequest struct {
	Principal string `json:"principal" binding:"required" example:"0x22d491Bde2303f2f43325b2108D26f1eAbA1e32b"`
}
