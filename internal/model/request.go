package model

// GenerationRequest carries the parameters for one Generate call. Only the
// fields a family uses are read; unset optional fields fall back to the
// configured defaults.
type GenerationRequest struct {
	Family Family `json:"family"`
	// Count is the batch size for GenerateBatch. Zero means one.
	Count int `json:"count,omitempty"`

	// integer, float, prime
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Precision *int     `json:"precision,omitempty"`

	// hex characters, base64 bytes, password characters
	Length *int `json:"length,omitempty"`

	// Variant selects the flavour within a family: country for address,
	// ipv4 "private", ipv6 "ula", vendor for mac, coin name, e-mail domain,
	// htpasswd algorithm, id kind.
	Variant   string `json:"variant,omitempty"`
	Separator string `json:"separator,omitempty"`

	// password: any of "l" lower, "u" upper, "d" digits, "s" symbols
	Charset          string `json:"charset,omitempty"`
	ExcludeAmbiguous bool   `json:"exclude_ambiguous,omitempty"`

	// htpasswd
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	// date, YYYY-MM-DD
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// GeneratedValue is one generated value.
type GeneratedValue struct {
	Family Family `json:"family"`
	Value  string `json:"value"`
	Secure bool   `json:"secure"`
}

// GeneratedBatch holds independent draws for one request.
type GeneratedBatch struct {
	Family Family   `json:"family"`
	Values []string `json:"values"`
	Secure bool     `json:"secure"`
}

// ValidationRequest asks whether Value is a well-formed member of Family.
// Variant picks the id kind when Family is "id".
type ValidationRequest struct {
	Family  Family `json:"family"`
	Value   string `json:"value"`
	Variant string `json:"variant,omitempty"`
	// Password is checked against the hash when validating htpasswd lines.
	Password string `json:"password,omitempty"`
}

// ValidationResult is the outcome of a validation. Reason is empty when Valid.
type ValidationResult struct {
	Family Family `json:"family"`
	Value  string `json:"value"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
