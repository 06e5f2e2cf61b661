package tasks

// ExportLockKey 返回会话级导出互斥锁的 Redis 键。
// API 入队前 SetNX 抢占，Worker 完成（或彻底失败）后释放。
func ExportLockKey(sessionID string) string {
	return "export_lock:" + sessionID
}

// NotifyChannel 返回会话的通知 Pub/Sub 频道名。
func NotifyChannel(sessionID string) string {
	return "session_notify:" + sessionID
}

// ExportLastObjectKey 返回记录会话最近一次导出对象键的 Redis 键。
// 匿名会话只保留最新产物，旧对象在下次导出成功后删除。
func ExportLastObjectKey(sessionID string) string {
	return "export_last_object:" + sessionID
}
