package constants

const (
	ViewData       = "view_data"
	CreateListing  = "create_listing"
	EditListing    = "edit_listing"
	CancelListing  = "cancel_listing"
	MakeOffer      = "make_offer"
	ManageOffers   = "manage_offers"
	SendMessage    = "send_message"
	UploadDocument = "upload_document"
	ManageUsers    = "manage_users"
)

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewData:       {Viewer, Carrier, Trader, Admin},
	CreateListing:  {Carrier, Trader, Admin},
	EditListing:    {Carrier, Trader, Admin},
	CancelListing:  {Carrier, Trader, Admin},
	MakeOffer:      {Carrier, Trader, Admin},
	ManageOffers:   {Carrier, Trader, Admin},
	SendMessage:    {Viewer, Carrier, Trader, Admin},
	UploadDocument: {Carrier, Trader, Admin},
	ManageUsers:    {Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
