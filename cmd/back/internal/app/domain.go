package app

import (
	"time"
)

type Tweet struct {
	Id        string    `json:"id"`
	Text      string    `json:"text"`
	UserId    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	Id        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Movie повторяет запись фильма из внешнего API
type Movie struct {
	Id                      int32    `json:"id"`
	Url                     string   `json:"url"`
	ImdbCode                string   `json:"imdb_code"`
	Title                   string   `json:"title"`
	TitleEnglish            string   `json:"title_english"`
	TitleLong               string   `json:"title_long"`
	Slug                    string   `json:"slug"`
	Year                    int32    `json:"year"`
	Rating                  float64  `json:"rating"`
	Runtime                 float64  `json:"runtime"`
	Genres                  []string `json:"genres"`
	Summary                 string   `json:"summary"`
	DescriptionFull         string   `json:"description_full"`
	Synopsis                string   `json:"synopsis"`
	YtTrailerCode           string   `json:"yt_trailer_code"`
	Language                string   `json:"language"`
	BackgroundImage         string   `json:"background_image"`
	BackgroundImageOriginal string   `json:"background_image_original"`
	SmallCoverImage         string   `json:"small_cover_image"`
	MediumCoverImage        string   `json:"medium_cover_image"`
	LargeCoverImage         string   `json:"large_cover_image"`
}

// Book повторяет запись книги из внешнего API
type Book struct {
	Rank             int32  `json:"rank"`
	Title            string `json:"title"`
	Author           string `json:"author"`
	Description      string `json:"description"`
	Publisher        string `json:"publisher"`
	PrimaryIsbn13    string `json:"primary_isbn13"`
	BookImage        string `json:"book_image"`
	AmazonProductUrl string `json:"amazon_product_url"`
}

// SeedUsers и SeedTweets - начальные данные для хранилищ
func SeedUsers() []User {
	return []User{
		{Id: "1", FirstName: "nico", LastName: "las"},
		{Id: "2", FirstName: "Elon", LastName: "Mask"},
	}
}

func SeedTweets() []Tweet {
	return []Tweet{
		{Id: "1", Text: "first one!", UserId: "2"},
		{Id: "2", Text: "second one", UserId: "1"},
	}
}
