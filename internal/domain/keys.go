package domain

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// EntityType 表示被监控实体的类型，用于拼装 GUID。
type EntityType string

const (
	EntityTypeCluster       EntityType = "AWSMSKCLUSTER"
	EntityTypeBroker        EntityType = "AWSMSKBROKER"
	EntityTypeTopic         EntityType = "AWSMSKTOPIC"
	EntityTypeConsumerGroup EntityType = "KAFKACONSUMERGROUP"

	LabelEntity = "Entity"
)

// EntityGUID 按 accountId|INFRA|entityType|base64(identifier) 生成实体 GUID。
// 集群的 identifier 为 "cluster:account"，其余实体追加自身 ID。
func EntityGUID(entityType EntityType, accountID, clusterName string, id any) string {
	identifier := fmt.Sprintf("%s:%s", clusterName, accountID)
	if entityType != EntityTypeCluster {
		identifier = fmt.Sprintf("%s:%v", identifier, id)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(identifier))
	return fmt.Sprintf("%s|INFRA|%s|%s", accountID, entityType, encoded)
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier 判断字符串能否直接作为 Neo4j 标签或关系类型。
func IsIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// QuoteIdentifier 用反引号包裹标签或关系类型，内部反引号加倍转义。
func QuoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// LabelPattern 根据标签集合拼成 Cypher 模板所需的字符串，如 ":`A`:`B`"。
func LabelPattern(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	var b strings.Builder
	for _, l := range sorted {
		b.WriteString(":")
		b.WriteString(QuoteIdentifier(l))
	}
	return b.String()
}

// JoinLabels 简单拼接标签用于 map key（内部使用）。
func JoinLabels(labels []string) string {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	return strings.Join(sorted, ":")
}

// EntityTypeOf 从 GUID 中解析实体类型，格式不符时返回空串。
func EntityTypeOf(guid string) EntityType {
	parts := strings.Split(guid, "|")
	if len(parts) != 4 || parts[1] != "INFRA" {
		return ""
	}
	return EntityType(parts[2])
}
