package announcements

type createAnnouncementRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	PostedBy string `json:"postedBy"`
}

type updateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
