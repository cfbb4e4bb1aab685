package models

// DashboardStats aggregates the admin dashboard counters.
type DashboardStats struct {
	NewsTotal        int `json:"news_total"`
	TournamentsTotal int `json:"tournaments_total"`
	TournamentsLive  int `json:"tournaments_live"`
	PlayersTotal     int `json:"players_total"`
	CampaignsTotal   int `json:"campaigns_total"`
	CampaignsActive  int `json:"campaigns_active"`
	PredictionsTotal int `json:"predictions_total"`
	SubscribersTotal int `json:"subscribers_total"`
}
