//go:build mage

// Package main 基于 Mage 的构建目标
//
// 用法:
//
//	mage build     编译 site-cms 与 sitectl 到 bin/
//	mage test      运行全部测试
//	mage swag      重新生成 docs/ 下的接口文档
//	mage run       使用 configs/config.yaml 启动服务
//	mage seed      写入 configs/seed.yaml 中的初始化内容
//	mage lint      运行 go vet 与 golangci-lint
//	mage clean     删除构建产物
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryDir = "bin"

var binaries = map[string]string{
	"site-cms": "./cmd/site-cms",
	"sitectl":  "./cmd/sitectl",
}

// Build 编译全部可执行文件
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	for name, pkg := range binaries {
		if err := sh.RunV("go", "build", "-o", filepath.Join(binaryDir, name), pkg); err != nil {
			return err
		}
	}
	return nil
}

// Test 运行全部测试
func Test() error {
	return sh.RunV("go", "test", "-count=1", "./...")
}

// Swag 生成 swagger 文档
func Swag() error {
	return sh.RunV("swag", "init", "-g", "cmd/site-cms/main.go", "-o", "docs")
}

// Run 编译并启动服务
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, "site-cms"), "-config", "configs/config.yaml")
}

// Seed 写入初始化内容与示例项目
func Seed() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, "sitectl"), "--config", "configs/config.yaml", "seed", "--projects")
}

// Lint 静态检查
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean 删除构建产物
func Clean() error {
	return os.RemoveAll(binaryDir)
}
