package entity

// Post is a public social post as returned by a post source.
type Post struct {
	Text     string
	Username string
	Name     string
}

// PostPage is one page of posts plus the cursor of the next page.
// An empty Next means there are no further pages.
type PostPage struct {
	Posts []Post
	Next  string
}
