package domain

import "time"

type ProductColor struct {
	Name     string `bson:"name" json:"name"`
	ImageURL string `bson:"image_url" json:"image_url"`
}

type Product struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	Name        string         `bson:"name" json:"name"`
	SKU         string         `bson:"sku" json:"sku"`
	Price       float64        `bson:"price" json:"price"`
	SalePrice   *float64       `bson:"sale_price,omitempty" json:"sale_price,omitempty"`
	Quantity    int            `bson:"quantity" json:"quantity"`
	Colors      []ProductColor `bson:"colors" json:"colors"`
	Sizes       []string       `bson:"sizes" json:"sizes"`
	Categories  []string       `bson:"categories" json:"categories"`
	IsTopSeller bool           `bson:"is_top_seller" json:"is_top_seller"`
	IsVisible   bool           `bson:"is_visible" json:"is_visible"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
}

type Category struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Name     string `bson:"name" json:"name"`
	ImageURL string `bson:"image_url" json:"image_url"`
}

type HeroSlide struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	ImageURL    string `bson:"image_url" json:"image_url"`
	LinkURL     string `bson:"link_url" json:"link_url"`
}
