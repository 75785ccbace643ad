package handler

type SignalRequest struct {
	Text *string `json:"text"`
}

type SignalResponse struct {
	Signal    string `json:"signal"`
	Reasoning string `json:"reasoning"`
}
