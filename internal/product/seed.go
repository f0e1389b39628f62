package product

// seedRows is the fallback catalog served when the live endpoint cannot be
// reached. Rows 11-20 repeat 1-10 under new ids.
var seedRows = []struct {
	id          string
	name        string
	description string
	rating      float64
	price       string
	image       string
}{
	{id: "1", name: "Apple Earphones", description: "Noise-cancellation, 40-hour battery", rating: 4.5, price: "$299.99", image: "apple_earphone_image"},
	{id: "2", name: "Bose QuietComfort 45", description: "Noise Cancellation, 24-hour battery", rating: 4.5, price: "$329.99", image: "bose_headphone_image"},
	{id: "3", name: "Samsung Galaxy S23", description: "Fitness Tracking, AMOLED Display", rating: 4.5, price: "$799.99", image: "samsung_s23phone_image"},
	{id: "4", name: "Firebolt 2", description: "Noise Cancellation, 24-hour battery", rating: 4.5, price: "$349.99", image: "venu_watch_image"},
	{id: "5", name: "PlayStation 5", description: "Ultra-HD, 825GB SSD, Ray Graphics", rating: 4.5, price: "$499.99", image: "apple_earphone_image"},
	{id: "6", name: "Canon EOS R5", description: "45MP Sensor, 8K Video Recording", rating: 4.5, price: "$3,899.99", image: "cannon_camera_image"},
	{id: "7", name: "MacBook Pro 16", description: "M2 Pro Chip, 16GB RAM, 512GB SSD", rating: 4.5, price: "$2,499.99", image: "macbook_image"},
	{id: "8", name: "Sony WF-1000XM5", description: "Noise-Cancellation, Hi-Res Audio", rating: 4.5, price: "$299.99", image: "sony_airbuds_image"},
	{id: "9", name: "Samsung Projector 4k", description: "4K Ultra HD, Realistic, Built-In Speaker", rating: 4.5, price: "$1,499.99", image: "projector_image"},
	{id: "10", name: "ASUS ROG Zephyrus G16", description: "Intel Core i9, RTX 4070, 16GB, 1TB", rating: 4.5, price: "$1,999.99", image: "asus_laptop_image"},
	{id: "11", name: "Apple Earphones", description: "Noise-cancellation, 40-hour battery", rating: 4.5, price: "$299.99", image: "apple_earphone_image"},
	{id: "12", name: "Bose QuietComfort 45", description: "Noise Cancellation, 24-hour battery", rating: 4.5, price: "$329.99", image: "bose_headphone_image"},
	{id: "13", name: "Samsung Galaxy S23", description: "Fitness Tracking, AMOLED Display", rating: 4.5, price: "$799.99", image: "samsung_s23phone_image"},
	{id: "14", name: "Firebolt 2", description: "Noise Cancellation, 24-hour battery", rating: 4.5, price: "$349.99", image: "venu_watch_image"},
	{id: "15", name: "PlayStation 5", description: "Ultra-HD, 825GB SSD, Ray Graphics", rating: 4.5, price: "$499.99", image: "apple_earphone_image"},
	{id: "16", name: "Canon EOS R5", description: "45MP Sensor, 8K Video Recording", rating: 4.5, price: "$3,899.99", image: "cannon_camera_image"},
	{id: "17", name: "MacBook Pro 16", description: "M2 Pro Chip, 16GB RAM, 512GB SSD", rating: 4.5, price: "$2,499.99", image: "macbook_image"},
	{id: "18", name: "Sony WF-1000XM5", description: "Noise-Cancellation, Hi-Res Audio", rating: 4.5, price: "$299.99", image: "sony_airbuds_image"},
	{id: "19", name: "Samsung Projector 4k", description: "4K Ultra HD, Realistic, Built-In Speaker", rating: 4.5, price: "$1,499.99", image: "projector_image"},
	{id: "20", name: "ASUS ROG Zephyrus G16", description: "Intel Core i9, RTX 4070, 16GB, 1TB", rating: 4.5, price: "$1,999.99", image: "asus_laptop_image"},
}

// Seed returns a fresh copy of the fallback catalog in display order.
func Seed() []Product {
	products := make([]Product, 0, len(seedRows))
	for _, r := range seedRows {
		products = append(products, Product{
			ID:          ID(r.id),
			Name:        r.name,
			Description: r.description,
			Rating:      r.rating,
			Price:       mustParsePrice(r.price),
			ImageURL:    r.image,
		})
	}
	return products
}
