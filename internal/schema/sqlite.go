package schema

// sqliteStatements is the application DDL for the SQLite dialect.
var sqliteStatements = []Statement{
	{
		Name: "users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    score         INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "idx_users_username",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_username ON users (username)`,
	},
	{
		Name: "games",
		SQL: `CREATE TABLE IF NOT EXISTS games (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    player_x_id INTEGER NOT NULL,
    player_o_id INTEGER NOT NULL,
    winner_id   INTEGER,
    status      TEXT NOT NULL CHECK(status IN ('waiting', 'active', 'finished')),
    started_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    finished_at TIMESTAMP,
    FOREIGN KEY(player_x_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY(player_o_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY(winner_id) REFERENCES users(id)
)`,
	},
	{
		Name: "idx_games_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_games_status ON games (status)`,
	},
	{
		Name: "moves",
		SQL: `CREATE TABLE IF NOT EXISTS moves (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    game_id    INTEGER NOT NULL,
    user_id    INTEGER NOT NULL,
    row        INTEGER NOT NULL CHECK(row BETWEEN 0 AND 2),
    col        INTEGER NOT NULL CHECK(col BETWEEN 0 AND 2),
    move_num   INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY(game_id) REFERENCES games(id) ON DELETE CASCADE,
    FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
)`,
	},
	{
		Name: "idx_moves_gameid",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_moves_gameid ON moves (game_id)`,
	},
	{
		Name: "scores",
		SQL: `CREATE TABLE IF NOT EXISTS scores (
    user_id     INTEGER PRIMARY KEY,
    total_games INTEGER NOT NULL DEFAULT 0,
    wins        INTEGER NOT NULL DEFAULT 0,
    losses      INTEGER NOT NULL DEFAULT 0,
    draws       INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
)`,
	},
}
