package natskv

import "github.com/mark3labs/listwiz/internal/listing"

func draftForm(title string) listing.FormData {
	f := listing.DefaultFormData()
	f.Title = title
	return f
}
