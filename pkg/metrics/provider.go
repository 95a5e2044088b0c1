package metrics

import "github.com/google/wire"

// ProviderSet 提供指标相关的依赖
var ProviderSet = wire.NewSet(ProvideRegister)

// ProvideRegister 注册所有指标并返回注册函数
func ProvideRegister() func() {
	return Register
}
