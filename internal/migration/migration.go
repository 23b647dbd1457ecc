// Package migration holds the SQLite schema for the scrobble store.
package migration

// Create is the full schema for a new database.
const Create = `
CREATE TABLE User (
  name TEXT PRIMARY KEY,
  last_updated DATETIME
);

CREATE TABLE Artist (
  name TEXT PRIMARY KEY
);

CREATE TABLE Album (
  artist TEXT,
  name TEXT,
  FOREIGN KEY (artist) REFERENCES Artist(name),
  PRIMARY KEY (artist, name)
);

CREATE TABLE Track (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  artist TEXT,
  album TEXT,
  FOREIGN KEY (artist) REFERENCES Artist(name),
  FOREIGN KEY (album) REFERENCES Album(name)
);

CREATE TABLE Listen (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user TEXT,
  track INTEGER,
  date INTEGER,
  FOREIGN KEY (user) REFERENCES User(name),
  FOREIGN KEY (track) REFERENCES Track(id)
);

CREATE INDEX listen_user_date ON Listen(user, date);
`
