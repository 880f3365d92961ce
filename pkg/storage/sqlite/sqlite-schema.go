package sqlite

// The schema relies on `IF NOT EXISTS` clauses throughout, so that applying it to a
// populated database is a harmless no-op, and so that two processes bootstrapping the
// same file at once can't trip over each other's CREATE statements.
const schema = `
BEGIN TRANSACTION;

CREATE TABLE
	IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash BLOB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);

CREATE TABLE
	IF NOT EXISTS pets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		species TEXT NOT NULL CHECK (species IN ('dog', 'cat')),
		breed TEXT,
		birth DATE NOT NULL,
		notes TEXT,
		FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		UNIQUE (user_id, name)
	);

CREATE TABLE
	IF NOT EXISTS daily_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		pet_id INTEGER NOT NULL,
		log_date DATE NOT NULL,
		weight REAL,
		food_g REAL,
		water_ml REAL,
		activity_min REAL,
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		FOREIGN KEY (pet_id) REFERENCES pets (id) ON DELETE CASCADE,
		UNIQUE (pet_id, log_date)
	);

CREATE INDEX IF NOT EXISTS idx_daily_user ON daily_logs (user_id);
CREATE INDEX IF NOT EXISTS idx_daily_pet_date ON daily_logs (pet_id, log_date);

CREATE TABLE
	IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		event_date DATE NOT NULL,
		title TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	);

CREATE INDEX IF NOT EXISTS idx_events_user_date ON events (user_id, event_date);

CREATE TABLE
	IF NOT EXISTS photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		file_path TEXT NOT NULL,
		caption TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	);

CREATE INDEX IF NOT EXISTS idx_photos_user_created ON photos (user_id, created_at DESC);

COMMIT;
`
