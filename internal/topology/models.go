package topology

// Broker 表示集群内的一个 broker。
type Broker struct {
	GUID string `yaml:"guid" json:"guid"`
	ID   string `yaml:"id" json:"id" validate:"required_without=GUID"`
	Host string `yaml:"host" json:"host,omitempty"`
}

// Topic 表示 topic 及其 broker 分配，Leader/Replicas 填写 broker ID 或 GUID。
type Topic struct {
	GUID              string   `yaml:"guid" json:"guid"`
	Name              string   `yaml:"name" json:"name" validate:"required_without=GUID"`
	Partitions        int      `yaml:"partitions" json:"partitions,omitempty" validate:"gte=0"`
	ReplicationFactor int      `yaml:"replication_factor" json:"replication_factor,omitempty" validate:"gte=0"`
	Leader            string   `yaml:"leader" json:"leader,omitempty"`
	Replicas          []string `yaml:"replicas" json:"replicas,omitempty"`
}

// Coordinator 指向消费组的协调 broker。
type Coordinator struct {
	ID string `yaml:"id" json:"id"`
}

// ConsumerGroup 表示消费组，Topics 填写 topic 名称或 GUID。
type ConsumerGroup struct {
	GUID        string      `yaml:"guid" json:"guid"`
	ID          string      `yaml:"id" json:"id" validate:"required_without=GUID"`
	Topics      []string    `yaml:"topics" json:"topics,omitempty"`
	Coordinator Coordinator `yaml:"coordinator" json:"coordinator"`
}

// ClusterEntities 是建图所需的集群组成。
type ClusterEntities struct {
	Brokers        []Broker        `yaml:"brokers" json:"brokers" validate:"dive"`
	Topics         []Topic         `yaml:"topics" json:"topics" validate:"dive"`
	ConsumerGroups []ConsumerGroup `yaml:"consumer_groups" json:"consumer_groups" validate:"dive"`
}

// Cluster 是一个集群的描述。
type Cluster struct {
	GUID            string `yaml:"guid" json:"guid"`
	Name            string `yaml:"name" json:"name" validate:"required_without=GUID"`
	ClusterEntities `yaml:",inline"`
}

// Topology 汇总拓扑源提供的全部集群。
type Topology struct {
	RunID     string    `yaml:"-" json:"run_id"`
	AccountID string    `yaml:"account_id" json:"account_id"`
	Clusters  []Cluster `yaml:"clusters" json:"clusters" validate:"required,min=1,dive"`
}
