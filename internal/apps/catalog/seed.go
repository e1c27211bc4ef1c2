package catalog

func ptr[T any](v T) *T { return &v }

// DefaultGames is the launch catalog.
var DefaultGames = []GameInput{
	{Slug: "BeamNG-drive-Mobile", Title: "BeamNG.drive Mobile", ImageURL: "https://avatars.githubusercontent.com/u/6404024?s=280&v=4", DataGame: "beamng", Category: "racing simulation", Version: "v1.0", ReleaseDate: "Feb 2025", Rating: ptr(4.0), SortOrder: ptr(1)},
	{Slug: "GTA-5-Mobile", Title: "GTA V Mobile", ImageURL: "https://i.pinimg.com/736x/8f/01/03/8f010359c57da7850e723fa17a53b55e.jpg", DataGame: "gta5", Category: "openworld action", Version: "v1.1", ReleaseDate: "Jan 2025", Rating: ptr(4.0), SortOrder: ptr(2)},
	{Slug: "Assetto-Corsa-Mobile", Title: "Assetto Corsa Mobile", ImageURL: "https://i.postimg.cc/mgStnz0K/Picsart-25-10-16-14-24-02-706.jpg", DataGame: "assetto", Category: "racing simulation", Version: "v2.0", ReleaseDate: "Mar 2025", Rating: ptr(5.0), SortOrder: ptr(3)},
	{Slug: "Forza-Horizon-5", Title: "Forza Horizon 5 Mobile", ImageURL: "https://images.seeklogo.com/logo-png/40/1/forza-horizon-5-logo-png_seeklogo-406612.png", DataGame: "forza", Category: "racing openworld", Version: "v1.0", ReleaseDate: "Dec 2024", Rating: ptr(4.0), SortOrder: ptr(4)},
	{Slug: "ETS-2-Mobile", Title: "Euro Truck Simulator 2", ImageURL: "https://i.pinimg.com/564x/32/ae/e5/32aee5919f1c4e81da58627d21b3323a.jpg", DataGame: "eurotruck", Category: "simulation", Version: "v1.0.0", ReleaseDate: "Nov 2024", Rating: ptr(4.0), SortOrder: ptr(5)},
	{Slug: "Watchdogs2-Mobile", Title: "Watch Dogs 2 Mobile", DataGame: "watchdogs", Category: "openworld action", Version: "v1.0.5", ReleaseDate: "Oct 2024", Rating: ptr(3.5), SortOrder: ptr(6)},
	{Slug: "The-Crew-Motorfest-Mobile", Title: "The Crew MotorFest", ImageURL: "https://i.postimg.cc/8Pq2KNXW/TCM-KA-low-Rez.jpg", DataGame: "motorfest", Category: "racing openworld", Version: "v1.0.0", ReleaseDate: "Jan 2025", Rating: ptr(4.5), SortOrder: ptr(7)},
}
