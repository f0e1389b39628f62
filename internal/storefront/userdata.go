package storefront

// UserData is the profile shown next to the cart.
type UserData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// placeholderUserData stands in until a profile source exists.
var placeholderUserData = UserData{
	ID:       "user_placeholder",
	Name:     "QuickCart Shopper",
	Email:    "shopper@quickcart.local",
	ImageURL: "profile_placeholder_image",
}
