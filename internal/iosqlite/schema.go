package iosqlite

// DDL of the persisted taxonomy. One release per file; a reload replaces
// the whole file instead of mutating tables in place.
var tablesDDL = []string{
	`CREATE TABLE nodes (
    tax_id INTEGER PRIMARY KEY,
    parent_tax_id INTEGER NOT NULL,
    rank TEXT NOT NULL,
    embl_code TEXT,
    genetic_code_id INTEGER NOT NULL,
    mito_genetic_code_id INTEGER,
    hidden INTEGER NOT NULL DEFAULT 0,
    comments TEXT
);`,
	`CREATE TABLE names (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tax_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    unique_name TEXT,
    name_class TEXT NOT NULL
);`,
	`CREATE TABLE merged (
    old_tax_id INTEGER PRIMARY KEY,
    new_tax_id INTEGER NOT NULL
);`,
	`CREATE TABLE deleted (
    tax_id INTEGER PRIMARY KEY
);`,
	`CREATE TABLE genetic_codes (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    trans_table TEXT NOT NULL,
    start_stop TEXT NOT NULL
);`,
	`CREATE TABLE codons (
    position INTEGER PRIMARY KEY,
    codon TEXT NOT NULL
);`,
	`CREATE TABLE release_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    release_id TEXT NOT NULL
);`,
}

var indicesDDL = []string{
	"CREATE INDEX idx_nodes_parent ON nodes(parent_tax_id);",
	"CREATE INDEX idx_names_tax_id ON names(tax_id);",
	"CREATE INDEX idx_names_name ON names(name);",
}
