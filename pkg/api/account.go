package api

// Balance is the account's remaining credit.
type Balance struct {
	Value      float64 `json:"value"      yaml:"value"`
	AutoReload bool    `json:"autoReload" yaml:"auto_reload"`
}
