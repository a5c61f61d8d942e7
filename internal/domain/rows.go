package domain

import "time"

// NodeRow 是写入 Neo4j 时批量 upsert 的节点 DTO。
type NodeRow struct {
	GUID       string         `json:"guid"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
	RunID      string         `json:"run_id"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// RelRow 代表一条正向关系写入所需的信息。
// Ordinal 区分同一对节点间的重复关系。
type RelRow struct {
	StartGUID  string         `json:"start_guid"`
	EndGUID    string         `json:"end_guid"`
	Type       RelationType   `json:"type"`
	Ordinal    int            `json:"ordinal"`
	Properties map[string]any `json:"properties"`
	RunID      string         `json:"run_id"`
}
