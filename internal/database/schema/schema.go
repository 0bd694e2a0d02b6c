package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Profiles & Sessions

CREATE TABLE IF NOT EXISTS profiles (
    user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(50) UNIQUE NOT NULL,
    display_name VARCHAR(100) NOT NULL DEFAULT '',
    uc_balance NUMERIC(38,0) NOT NULL DEFAULT 0 CHECK (uc_balance >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Sessions are issued by the external auth service; this side only verifies.
CREATE TABLE IF NOT EXISTS sessions (
    token_hash CHAR(64) PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions (user_id);

-- Cases & Drop Tables

CREATE TABLE IF NOT EXISTS cases (
    case_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(100) NOT NULL,
    price BIGINT NOT NULL CHECK (price >= 0),
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS case_items (
    case_item_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    case_id UUID NOT NULL REFERENCES cases(case_id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    item_type VARCHAR(10) NOT NULL CHECK (item_type IN ('badge', 'coins')),
    badge_id VARCHAR(100),
    coin_amount BIGINT,
    rarity VARCHAR(30) NOT NULL DEFAULT 'common',
    drop_rate DOUBLE PRECISION NOT NULL CHECK (drop_rate >= 0),
    display_value BIGINT NOT NULL DEFAULT 0 CHECK (display_value >= 0),
    CHECK ((item_type = 'badge' AND badge_id IS NOT NULL AND coin_amount IS NULL)
        OR (item_type = 'coins' AND coin_amount IS NOT NULL AND badge_id IS NULL))
);
CREATE INDEX IF NOT EXISTS idx_case_items_case ON case_items (case_id);

-- Inventory (rows are never deleted; liquidation flips sold)

CREATE TABLE IF NOT EXISTS inventory_items (
    item_id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    item_type VARCHAR(10) NOT NULL CHECK (item_type IN ('badge', 'coins')),
    badge_id VARCHAR(100),
    coin_amount BIGINT,
    rarity VARCHAR(30) NOT NULL DEFAULT 'common',
    estimated_value BIGINT NOT NULL DEFAULT 0,
    won_from_case_id UUID NOT NULL REFERENCES cases(case_id),
    won_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    sold BOOLEAN NOT NULL DEFAULT FALSE,
    sold_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_inventory_user_unsold ON inventory_items (user_id) WHERE NOT sold;

-- Append-only audit ledger

CREATE TABLE IF NOT EXISTS case_transactions (
    transaction_id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
    case_id UUID REFERENCES cases(case_id), -- NULL for liquidations
    transaction_type VARCHAR(30) NOT NULL,
    items_won JSONB NOT NULL DEFAULT '[]',
    total_value BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_case_transactions_user ON case_transactions (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS case_openings (
    opening_id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
    case_id UUID NOT NULL REFERENCES cases(case_id),
    price_paid BIGINT NOT NULL,
    won_item_id UUID NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_case_openings_user ON case_openings (user_id, created_at DESC);

-- Public live feed (append-only; consumers cap to the most recent N)

CREATE TABLE IF NOT EXISTS live_feed (
    entry_id UUID PRIMARY KEY,
    display_name VARCHAR(100) NOT NULL,
    case_name VARCHAR(100) NOT NULL,
    item_name VARCHAR(100) NOT NULL,
    rarity VARCHAR(30) NOT NULL DEFAULT 'common',
    item_value BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_live_feed_created ON live_feed (created_at DESC);
`
