package catalog

// Seed is the built-in catalog used when no other source is configured.
var Seed = []Movie{
	{ID: 1, Title: "The Last Projectionist", Genre: "Drama", Language: "English", ReleaseDate: "2025-01-17", Duration: 124, Rating: 7.8, Status: StatusEnded},
	{ID: 2, Title: "Orbit of Glass", Genre: "Sci-Fi", Language: "English", ReleaseDate: "2025-03-07", Duration: 139, Rating: 8.1, Status: StatusEnded},
	{ID: 3, Title: "Mùa Hè Cuối", Genre: "Romance", Language: "Vietnamese", ReleaseDate: "2025-04-25", Duration: 108, Rating: 7.2, Status: StatusEnded},
	{ID: 4, Title: "Night Shift at Hall 9", Genre: "Horror", Language: "English", ReleaseDate: "2025-06-13", Duration: 97, Rating: 6.4, Status: StatusNowShowing},
	{ID: 5, Title: "Paper Lanterns", Genre: "Animation", Language: "Japanese", ReleaseDate: "2025-07-18", Duration: 102, Rating: 8.4, Status: StatusNowShowing},
	{ID: 6, Title: "Double Feature", Genre: "Comedy", Language: "English", ReleaseDate: "2025-08-01", Duration: 95, Rating: 6.9, Status: StatusNowShowing},
	{ID: 7, Title: "Saigon Express", Genre: "Action", Language: "Vietnamese", ReleaseDate: "2025-08-29", Duration: 118, Rating: 7.0, Status: StatusNowShowing},
	{ID: 8, Title: "The Quiet Balcony", Genre: "Drama", Language: "French", ReleaseDate: "2025-09-19", Duration: 111, Rating: 7.6, Status: StatusNowShowing},
	{ID: 9, Title: "Ironclad Row", Genre: "Action", Language: "English", ReleaseDate: "2025-11-21", Duration: 131, Rating: 0, Status: StatusComingSoon},
	{ID: 10, Title: "Snowfall Over Seoul", Genre: "Romance", Language: "Korean", ReleaseDate: "2025-12-19", Duration: 115, Rating: 0, Status: StatusComingSoon},
	{ID: 11, Title: "Aisle Seat", Genre: "Comedy", Language: "English", ReleaseDate: "2026-01-16", Duration: 99, Rating: 0, Status: StatusComingSoon},
	{ID: 12, Title: "Deep Orbit", Genre: "Sci-Fi", Language: "English", ReleaseDate: "2026-02-13", Duration: 142, Rating: 0, Status: StatusComingSoon},
}
