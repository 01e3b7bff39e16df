package sqlitestore

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
    position     INTEGER PRIMARY KEY,
    date         TEXT NOT NULL DEFAULT '',
    category     TEXT NOT NULL DEFAULT '',
    amount       TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT ''
);
`
