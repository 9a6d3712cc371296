package schema

// postgresStatements is the application DDL for the PostgreSQL dialect.
// Same tables and indices as the SQLite set, with serial keys and
// timezone-aware timestamps. "row" is reserved in PostgreSQL and must
// stay quoted.
var postgresStatements = []Statement{
	{
		Name: "users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    score         INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		Name: "idx_users_username",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_username ON users (username)`,
	},
	{
		Name: "games",
		SQL: `CREATE TABLE IF NOT EXISTS games (
    id          BIGSERIAL PRIMARY KEY,
    player_x_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    player_o_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    winner_id   BIGINT REFERENCES users(id),
    status      TEXT NOT NULL CHECK(status IN ('waiting', 'active', 'finished')),
    started_at  TIMESTAMPTZ DEFAULT NOW(),
    finished_at TIMESTAMPTZ
)`,
	},
	{
		Name: "idx_games_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_games_status ON games (status)`,
	},
	{
		Name: "moves",
		SQL: `CREATE TABLE IF NOT EXISTS moves (
    id         BIGSERIAL PRIMARY KEY,
    game_id    BIGINT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
    user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    "row"      INTEGER NOT NULL CHECK("row" BETWEEN 0 AND 2),
    col        INTEGER NOT NULL CHECK(col BETWEEN 0 AND 2),
    move_num   INTEGER NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW()
)`,
	},
	{
		Name: "idx_moves_gameid",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_moves_gameid ON moves (game_id)`,
	},
	{
		Name: "scores",
		SQL: `CREATE TABLE IF NOT EXISTS scores (
    user_id     BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    total_games INTEGER NOT NULL DEFAULT 0,
    wins        INTEGER NOT NULL DEFAULT 0,
    losses      INTEGER NOT NULL DEFAULT 0,
    draws       INTEGER NOT NULL DEFAULT 0
)`,
	},
}
