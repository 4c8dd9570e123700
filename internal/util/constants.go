package util

// TimeFormat 答题记录的时间戳格式
const TimeFormat = "2006-01-02 15:04:05"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	BackendSheets = "sheets"
	BackendMySQL  = "mysql"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// gin.Context 中的 key
const (
	ContextSessionKey = "quiz_session"
)

const (
	MimePNG  = "image/png"
	MimeText = "text/plain; charset=utf-8"
)

// ChartFilename 统计图每次请求覆盖写入
const ChartFilename = "barplot.png"

// DefaultName 表单没有 name 字段时使用
const DefaultName = "Anonymous"
