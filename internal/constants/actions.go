package constants

const (
	Create     = "CREATE"
	Update     = "UPDATE"
	Delete     = "DELETE"
	Renew      = "RENEW"
	CheckIn    = "CHECK_IN"
	CheckOut   = "CHECK_OUT"
	Deactivate = "DEACTIVATE"
	Register   = "REGISTER"
)
