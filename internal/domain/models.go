package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// User represents one record returned by the random user API
type User struct {
	Gender     string     `json:"gender"`
	Name       Name       `json:"name"`
	Location   Location   `json:"location"`
	Email      string     `json:"email"`
	Login      Login      `json:"login"`
	Dob        DatedAge   `json:"dob"`
	Registered DatedAge   `json:"registered"`
	Phone      string     `json:"phone"`
	Cell       string     `json:"cell"`
	ID         Identifier `json:"id"`
	Picture    Picture    `json:"picture"`
	Nat        string     `json:"nat"`
}

// Name is the person's name as split by the API
type Name struct {
	Title string `json:"title"`
	First string `json:"first"`
	Last  string `json:"last"`
}

// Location is the postal and geographic location of a user
type Location struct {
	Street      Street      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	Postcode    Postcode    `json:"postcode"`
	Coordinates Coordinates `json:"coordinates"`
	Timezone    Timezone    `json:"timezone"`
}

type Street struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Timezone struct {
	Offset      string `json:"offset"`
	Description string `json:"description"`
}

// Login holds the generated account identity. Credential hashes are not kept.
type Login struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
}

// DatedAge is a timestamp together with its age in years (dob, registered)
type DatedAge struct {
	Date time.Time `json:"date"`
	Age  int       `json:"age"`
}

// Identifier is a national identifier; Value is nil when the API has none
type Identifier struct {
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

// Picture holds the portrait URLs in the three sizes the API provides
type Picture struct {
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

// Postcode is sent by the API either as a JSON string or a JSON number
type Postcode string

// UnmarshalJSON accepts both string and numeric postcodes
func (p *Postcode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Postcode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Postcode(n.String())
	return nil
}

// MarshalJSON writes numeric postcodes back as numbers
func (p Postcode) MarshalJSON() ([]byte, error) {
	s := string(p)
	digits := strings.TrimPrefix(s, "-")
	if _, err := strconv.ParseInt(s, 10, 64); err == nil && (digits[0] != '0' || digits == "0") {
		return []byte(s), nil
	}
	return json.Marshal(string(p))
}

// FullName returns "first last", the string the name filter matches against
func (u User) FullName() string {
	return u.Name.First + " " + u.Name.Last
}

// Place returns "city, state" as shown in the location column
func (u User) Place() string {
	return u.Location.City + ", " + u.Location.State
}

// Envelope is the response body of the random user API
type Envelope struct {
	Results []User `json:"results"`
	Info    *Info  `json:"info,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Info describes the batch a response belongs to
type Info struct {
	Seed    string `json:"seed"`
	Results int    `json:"results"`
	Page    int    `json:"page"`
	Version string `json:"version"`
}
