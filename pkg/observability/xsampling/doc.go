// Package xsampling 提供采样策略。
//
// Sampler 决定一个事件是否被采样，用于控制高频路径上的日志量。
// xtiming 在根计时作用域上调用 Sampler，整棵计时树共享同一个决策。
//
// 提供的策略：
//   - Always / Never：全采样 / 不采样
//   - NewRateSampler(rate)：按比率随机采样
//   - NewCountSampler(n)：每 n 个事件采样 1 个，第 1、n+1、2n+1... 个被采样
package xsampling
