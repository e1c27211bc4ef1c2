package dto

type StatsResponse struct {
	Users    int64 `json:"users"`
	Games    int64 `json:"games"`
	Reviews  int64 `json:"reviews"`
	Comments int64 `json:"comments"`
}

type SetConfigRequest struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}
