package apierror

// Error type URIs following the urn:guardian:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:guardian:error:validation"

	// TypeInvalidInput indicates an empty or invariant-violating record window (400)
	TypeInvalidInput = "urn:guardian:error:invalid_input"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:guardian:error:not_found"

	// TypeDuplicateRule indicates an intervention rule ID is already taken (409)
	TypeDuplicateRule = "urn:guardian:error:duplicate_rule"

	// TypeInvalidRule indicates an intervention rule with out-of-range fields (400)
	TypeInvalidRule = "urn:guardian:error:invalid_rule"

	// TypeChallengeActive indicates start was called with a challenge running (409)
	TypeChallengeActive = "urn:guardian:error:challenge_active"

	// TypeChallengeFinished indicates a check-in after day 7 (409)
	TypeChallengeFinished = "urn:guardian:error:challenge_finished"

	// TypeChallengeNotActive indicates a transition without an active challenge (409)
	TypeChallengeNotActive = "urn:guardian:error:challenge_not_active"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:guardian:error:bad_request"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:guardian:error:internal"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation         = "Validation Error"
	TitleInvalidInput       = "Invalid Record Window"
	TitleNotFound           = "Resource Not Found"
	TitleDuplicateRule      = "Duplicate Rule ID"
	TitleInvalidRule        = "Invalid Intervention Rule"
	TitleChallengeActive    = "Challenge Already Active"
	TitleChallengeFinished  = "Challenge Already Finished"
	TitleChallengeNotActive = "No Active Challenge"
	TitleBadRequest         = "Bad Request"
	TitleInternal           = "Internal Server Error"
)
