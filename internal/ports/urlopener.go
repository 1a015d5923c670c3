package ports

// URLOpener defines the interface for opening cited URLs in the system browser
type URLOpener interface {
	// Open opens the URL with the platform's default handler.
	// The URL must be absolute http(s).
	Open(url string) error
}
